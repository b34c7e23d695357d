// Package categorizer assigns spending categories to transaction
// descriptions. A curated keyword table answers first with high
// confidence; descriptions that match no keyword fall through to a
// naive Bayes model trained on a synthetic corpus expanded from the
// same table.
package categorizer

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/moneypenny/penny/internal/model"
)

const (
	keywordConfidence = 0.95
	fallbackCategory  = "Other"
)

// Categorizer predicts a category for free-text descriptions. Safe for
// concurrent use; Retrain swaps the model atomically under the lock.
type Categorizer struct {
	mu sync.RWMutex
	nb *naiveBayes
}

// New builds a categorizer and trains it on the built-in corpus.
// Training failure is tolerated: keyword matching still works and the
// statistical path degrades to the fallback category.
func New() *Categorizer {
	c := &Categorizer{}
	nb, err := trainNaiveBayes(TrainingCorpus(), 0.1)
	if err != nil {
		slog.Warn("classifier training failed, keyword matching only", "error", err)
		return c
	}
	c.nb = nb
	return c
}

// normalizeDescription lowercases and collapses non-alphanumerics to
// single spaces so keyword containment checks are punctuation-proof.
func normalizeDescription(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// matchKeyword scans the table in priority order and returns the first
// category whose keyword appears in the normalized text.
func matchKeyword(normalized string) (string, bool) {
	for _, entry := range keywordTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(normalized, keyword) {
				return entry.Category, true
			}
		}
	}
	return "", false
}

// Predict returns the best category for a description with a
// confidence in [0,1]. Keyword hits carry fixed high confidence; model
// predictions carry the class posterior. Blank input and an untrained
// model both yield the fallback category with zero confidence.
func (c *Categorizer) Predict(description string) model.ClassificationResult {
	normalized := normalizeDescription(description)
	if normalized == "" {
		return model.ClassificationResult{Category: fallbackCategory, Confidence: 0}
	}

	if category, ok := matchKeyword(normalized); ok {
		return model.ClassificationResult{Category: category, Confidence: keywordConfidence}
	}

	c.mu.RLock()
	nb := c.nb
	c.mu.RUnlock()
	if nb == nil {
		return model.ClassificationResult{Category: fallbackCategory, Confidence: 0}
	}

	probs := nb.predictProba(normalized)
	if len(probs) == 0 {
		return model.ClassificationResult{Category: fallbackCategory, Confidence: 0}
	}
	return probs[0]
}

// TopPredictions returns the n most likely categories from the model,
// bypassing the keyword table so callers see the full distribution.
func (c *Categorizer) TopPredictions(description string, n int) []model.ClassificationResult {
	normalized := normalizeDescription(description)
	if normalized == "" {
		return []model.ClassificationResult{{Category: fallbackCategory, Confidence: 0}}
	}

	c.mu.RLock()
	nb := c.nb
	c.mu.RUnlock()
	if nb == nil {
		return []model.ClassificationResult{{Category: fallbackCategory, Confidence: 0}}
	}

	probs := nb.predictProba(normalized)
	if n > 0 && n < len(probs) {
		probs = probs[:n]
	}
	return probs
}

// Retrain rebuilds the model from the built-in corpus plus the given
// extra examples and swaps it in atomically. The old model keeps
// serving predictions until the swap.
func (c *Categorizer) Retrain(extra []model.TrainingExample) error {
	corpus := TrainingCorpus()
	corpus = append(corpus, extra...)

	nb, err := trainNaiveBayes(corpus, 0.1)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.nb = nb
	c.mu.Unlock()

	slog.Info("classifier retrained", "examples", len(corpus), "classes", len(nb.classes))
	return nil
}
