package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeNewsLabels(t *testing.T) LabelMap {
	t.Helper()
	table, ok := PresetLabels("fake-news")
	require.True(t, ok)
	m, err := NewLabelMap(table)
	require.NoError(t, err)
	return m
}

func TestNormalize_Scenarios(t *testing.T) {
	labels := fakeNewsLabels(t)
	sentimentTable, ok := PresetLabels("sentiment")
	require.True(t, ok)
	sentiment, err := NewLabelMap(sentimentTable)
	require.NoError(t, err)

	tests := []struct {
		name      string
		labels    *LabelMap
		scores    []LabelScore
		wantCat   Category
		wantLabel string
		wantPct   string
	}{
		{
			name:      "domain labels credible",
			scores:    []LabelScore{{"LABEL_1", 0.92}, {"LABEL_0", 0.08}},
			wantCat:   CategoryCredible,
			wantLabel: "LABEL_1",
			wantPct:   "92.0%",
		},
		{
			name:      "textual labels misleading",
			scores:    []LabelScore{{"FAKE", 0.81}, {"REAL", 0.19}},
			wantCat:   CategoryMisleading,
			wantLabel: "FAKE",
			wantPct:   "81.0%",
		},
		{
			name:      "lower case label",
			scores:    []LabelScore{{"real", 0.7}, {"fake", 0.3}},
			wantCat:   CategoryCredible,
			wantLabel: "real",
			wantPct:   "70.0%",
		},
		{
			name:      "sentiment fallback lower case",
			labels:    &sentiment,
			scores:    []LabelScore{{"negative", 0.35}, {"positive", 0.65}},
			wantCat:   CategoryCredible,
			wantLabel: "positive",
			wantPct:   "65.0%",
		},
		{
			name:      "sentiment fallback negative",
			labels:    &sentiment,
			scores:    []LabelScore{{"POSITIVE", 0.1}, {"NEGATIVE", 0.9}},
			wantCat:   CategoryMisleading,
			wantLabel: "NEGATIVE",
			wantPct:   "90.0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := labels
			if tt.labels != nil {
				m = *tt.labels
			}
			sel, err := Normalize(&ClassificationResult{Scores: tt.scores}, m)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCat, sel.Category)
			assert.Equal(t, tt.wantLabel, sel.Label)
			assert.Equal(t, tt.wantPct, FormatConfidence(sel.Score))
		})
	}
}

func TestNormalize_IndependentOfOrder(t *testing.T) {
	labels := fakeNewsLabels(t)
	orders := [][]LabelScore{
		{{"LABEL_0", 0.1}, {"LABEL_1", 0.6}, {"FAKE", 0.3}},
		{{"LABEL_1", 0.6}, {"FAKE", 0.3}, {"LABEL_0", 0.1}},
		{{"FAKE", 0.3}, {"LABEL_0", 0.1}, {"LABEL_1", 0.6}},
	}
	for _, scores := range orders {
		sel, err := Normalize(&ClassificationResult{Scores: scores}, labels)
		require.NoError(t, err)
		assert.Equal(t, "LABEL_1", sel.Label)
		assert.Equal(t, CategoryCredible, sel.Category)
	}
}

func TestNormalize_TieBreakFirstEntryWins(t *testing.T) {
	labels := fakeNewsLabels(t)

	tied := &ClassificationResult{Scores: []LabelScore{{"FAKE", 0.5}, {"REAL", 0.5}}}
	for i := 0; i < 10; i++ {
		sel, err := Normalize(tied, labels)
		require.NoError(t, err)
		assert.Equal(t, "FAKE", sel.Label)
		assert.Equal(t, CategoryMisleading, sel.Category)
	}

	reversed := &ClassificationResult{Scores: []LabelScore{{"REAL", 0.5}, {"FAKE", 0.5}}}
	sel, err := Normalize(reversed, labels)
	require.NoError(t, err)
	assert.Equal(t, "REAL", sel.Label)
}

func TestNormalize_UnmappedLabel(t *testing.T) {
	labels := fakeNewsLabels(t)
	_, err := Normalize(&ClassificationResult{Scores: []LabelScore{{"SATIRE", 0.9}, {"REAL", 0.1}}}, labels)

	var unmapped *UnmappedLabelError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "SATIRE", unmapped.Label)
}

func TestNormalize_InvalidResult(t *testing.T) {
	labels := fakeNewsLabels(t)
	tests := []*ClassificationResult{
		nil,
		{},
		{Scores: []LabelScore{{"", 0.5}}},
		{Scores: []LabelScore{{"REAL", 1.5}}},
		{Scores: []LabelScore{{"REAL", -0.1}}},
	}
	for _, result := range tests {
		_, err := Normalize(result, labels)
		assert.Error(t, err)
	}
}

func TestSelectBest(t *testing.T) {
	_, ok := SelectBest(nil)
	assert.False(t, ok)

	best, ok := SelectBest(&ClassificationResult{Scores: []LabelScore{{"A", 0.2}, {"B", 0.7}, {"C", 0.7}}})
	require.True(t, ok)
	assert.Equal(t, "B", best.Label)
}
