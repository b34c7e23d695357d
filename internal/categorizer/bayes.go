package categorizer

import (
	"math"
	"sort"
	"strings"

	"github.com/moneypenny/penny/internal/common"
	"github.com/moneypenny/penny/internal/model"
)

// stopwords filtered out during tokenization. Short functional words
// only; domain words like "payment" must survive.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"that": {}, "the": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {}, "i": {}, "my": {}, "me": {},
}

// naiveBayes is a multinomial naive Bayes classifier over tf-idf
// features (unigrams and bigrams). Training is done once up front; the
// trained model is immutable, so concurrent prediction needs no locking.
type naiveBayes struct {
	vocab          map[string]int
	idf            []float64
	classes        []string
	classLogPrior  []float64
	featureLogProb [][]float64
	alpha          float64
}

// tokenize lowercases, keeps alphanumeric runs, drops stopwords, and
// emits unigrams plus adjacent bigrams.
func tokenize(text string) []string {
	var words []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	filtered := words[:0]
	for _, w := range words {
		if _, skip := stopwords[w]; !skip {
			filtered = append(filtered, w)
		}
	}

	tokens := make([]string, 0, 2*len(filtered))
	tokens = append(tokens, filtered...)
	for i := 0; i+1 < len(filtered); i++ {
		tokens = append(tokens, filtered[i]+" "+filtered[i+1])
	}
	return tokens
}

// trainNaiveBayes fits the classifier on the given examples.
func trainNaiveBayes(examples []model.TrainingExample, alpha float64) (*naiveBayes, error) {
	if len(examples) == 0 {
		return nil, common.ErrEmptyCorpus
	}

	docs := make([][]string, len(examples))
	vocab := make(map[string]int)
	df := []int{}
	for i, ex := range examples {
		docs[i] = tokenize(ex.Text)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			df[idx]++
		}
	}
	if len(vocab) == 0 {
		return nil, common.ErrEmptyCorpus
	}

	n := float64(len(examples))
	idf := make([]float64, len(df))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	classIndex := make(map[string]int)
	var classes []string
	for _, ex := range examples {
		if _, ok := classIndex[ex.Category]; !ok {
			classIndex[ex.Category] = len(classes)
			classes = append(classes, ex.Category)
		}
	}

	// Per-class tf-idf feature sums.
	featureSums := make([][]float64, len(classes))
	classTotals := make([]float64, len(classes))
	classCounts := make([]float64, len(classes))
	for i := range featureSums {
		featureSums[i] = make([]float64, len(vocab))
	}
	for i, ex := range examples {
		c := classIndex[ex.Category]
		classCounts[c]++
		for idx, weight := range vectorize(docs[i], vocab, idf) {
			featureSums[c][idx] += weight
			classTotals[c] += weight
		}
	}

	nb := &naiveBayes{
		vocab:          vocab,
		idf:            idf,
		classes:        classes,
		classLogPrior:  make([]float64, len(classes)),
		featureLogProb: make([][]float64, len(classes)),
		alpha:          alpha,
	}
	vocabSize := float64(len(vocab))
	for c := range classes {
		nb.classLogPrior[c] = math.Log(classCounts[c] / n)
		nb.featureLogProb[c] = make([]float64, len(vocab))
		denom := math.Log(classTotals[c] + alpha*vocabSize)
		for t := range nb.featureLogProb[c] {
			nb.featureLogProb[c][t] = math.Log(featureSums[c][t]+alpha) - denom
		}
	}

	return nb, nil
}

// vectorize builds an l2-normalized sparse tf-idf vector for the tokens.
func vectorize(tokens []string, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := vocab[tok]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for idx := range vec {
		vec[idx] *= idf[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// predictProba returns class posteriors for the text, sorted by
// descending probability. Unknown-only text degenerates to the priors.
func (nb *naiveBayes) predictProba(text string) []model.ClassificationResult {
	vec := vectorize(tokenize(text), nb.vocab, nb.idf)

	logJoint := make([]float64, len(nb.classes))
	maxLog := math.Inf(-1)
	for c := range nb.classes {
		score := nb.classLogPrior[c]
		for idx, weight := range vec {
			score += weight * nb.featureLogProb[c][idx]
		}
		logJoint[c] = score
		if score > maxLog {
			maxLog = score
		}
	}

	var total float64
	probs := make([]float64, len(logJoint))
	for c, score := range logJoint {
		probs[c] = math.Exp(score - maxLog)
		total += probs[c]
	}

	results := make([]model.ClassificationResult, len(nb.classes))
	for c, class := range nb.classes {
		results[c] = model.ClassificationResult{
			Category:   class,
			Confidence: probs[c] / total,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}
