package categorizer

import (
	"strings"

	"github.com/moneypenny/penny/internal/model"
)

// TrainingCorpus expands the keyword table into the synthetic training
// set for the statistical classifier: each keyword yields the canonical
// entry plus five templated paraphrases. The expansion is pure and
// deterministic so the corpus is reproducible independently of the
// classifier.
func TrainingCorpus() []model.TrainingExample {
	var examples []model.TrainingExample

	for _, entry := range keywordTable {
		for _, keyword := range entry.Keywords {
			variants := []string{
				keyword,
				strings.ToUpper(keyword),
				capitalize(keyword),
				"paid for " + keyword,
				keyword + " payment",
				keyword + " expense",
			}
			for _, text := range variants {
				examples = append(examples, model.TrainingExample{
					Text:     text,
					Category: entry.Category,
				})
			}
		}
	}

	return examples
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
