package core

// Selection is the highest scoring label and the category it maps to
type Selection struct {
	Label    string
	Score    float64
	Category Category
}

// SelectBest returns the entry with the maximum score. On an exact tie the
// earliest entry wins.
func SelectBest(result *ClassificationResult) (LabelScore, bool) {
	if result == nil || len(result.Scores) == 0 {
		return LabelScore{}, false
	}
	best := result.Scores[0]
	for _, s := range result.Scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

// Normalize reduces a classification result to a category using labels.
// An unmapped winning label is an error, never a default category.
func Normalize(result *ClassificationResult, labels LabelMap) (Selection, error) {
	if err := result.Validate(); err != nil {
		return Selection{}, err
	}
	best, _ := SelectBest(result)
	category, ok := labels.Category(best.Label)
	if !ok {
		return Selection{}, &UnmappedLabelError{Label: best.Label}
	}
	return Selection{
		Label:    best.Label,
		Score:    best.Score,
		Category: category,
	}, nil
}
