package categorizer

import "github.com/moneypenny/penny/internal/model"

// HistoryExample converts a stored transaction into a labeled training
// example. The second return is false for transactions that carry no
// usable text or category.
func HistoryExample(txn model.Transaction) (model.TrainingExample, bool) {
	if txn.Description == "" || txn.CategoryName == "" {
		return model.TrainingExample{}, false
	}
	return model.TrainingExample{
		Text:     txn.Description,
		Category: txn.CategoryName,
	}, true
}

// HistoryExamples converts a transaction history into the extra
// training examples the classifier refits on, so predictions adapt to
// how the user actually describes their spending.
func HistoryExamples(txns []model.Transaction) []model.TrainingExample {
	var examples []model.TrainingExample
	for _, txn := range txns {
		if ex, ok := HistoryExample(txn); ok {
			examples = append(examples, ex)
		}
	}
	return examples
}
