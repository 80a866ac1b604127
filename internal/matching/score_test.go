package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScorePair_WeightedSumExactly(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := mkItem("Electronics", "black", "Library", "iPhone 13", "black iphone with case", base)
	b := mkItem("Electronics", "Black", "Main Library", "iPhone 13", "black iphone with case", base.Add(24*time.Hour))

	s := ScorePair(a, b, DefaultWindowDays)

	// итог равен взвешенной сумме пяти компонент и ничему больше
	expected := 0.0
	if s.CategoryMatch {
		expected += WeightCategory
	}
	if s.ColorMatch {
		expected += WeightColor
	}
	if s.LocationMatch {
		expected += WeightLocation
	}
	expected += s.DateProximity * WeightDate
	expected += s.TextSimilarity * WeightText

	assert.InDelta(t, expected, s.Total, 1e-12)
	assert.GreaterOrEqual(t, s.Total, 0.0)
	assert.LessOrEqual(t, s.Total, 1.0)
}

func TestScorePair_SymmetricInDirection(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	lost := mkItem("Electronics", "black", "Library", "iPhone", "lost my phone", base)
	found := mkItem("Electronics", "dark black", "Library hall", "phone", "found an iphone", base.Add(36*time.Hour))

	ab := ScorePair(lost, found, DefaultWindowDays)
	ba := ScorePair(found, lost, DefaultWindowDays)

	assert.InDelta(t, ab.Total, ba.Total, 1e-12)
	assert.Equal(t, ab.Breakdown, ba.Breakdown)
}

func TestScorePair_PerfectPairScoresHigh(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := mkItem("Electronics", "black", "Library", "iPhone 13", "black iphone", base)
	b := mkItem("Electronics", "black", "Library", "iPhone 13", "black iphone", base)

	s := ScorePair(a, b, DefaultWindowDays)

	assert.Greater(t, s.Total, 0.8)
	assert.True(t, s.CategoryMatch)
	assert.True(t, s.ColorMatch)
	assert.True(t, s.LocationMatch)
	assert.InDelta(t, 1.0, s.DateProximity, 1e-9)
	assert.InDelta(t, 1.0, s.TextSimilarity, 1e-9)
	assert.InDelta(t, 1.0, s.Total, 1e-9)
}

func TestScorePair_CategoryWeight(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// всё совпадает, кроме категории
	a := mkItem("Books", "black", "Library", "item", "same words", base)
	b := mkItem("Electronics", "black", "Library", "item", "same words", base)
	same := mkItem("Electronics", "black", "Library", "item", "same words", base)

	mismatch := ScorePair(a, b, DefaultWindowDays)
	full := ScorePair(same, b, DefaultWindowDays)

	assert.False(t, mismatch.CategoryMatch)
	assert.True(t, full.CategoryMatch)
	// потеря ровно веса категории
	assert.InDelta(t, WeightCategory, full.Total-mismatch.Total, 1e-12)
	assert.Less(t, mismatch.Total, 0.7+1e-9)
}

func TestScorePair_NeutralSignalsOnly(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// категории разные, цвета нет, локации не пересекаются, тексты чужие,
	// даты за горизонтом — итог близок к нулю
	a := mkItem("Books", "", "North Gate", "red notebook", "math notes", base)
	b := mkItem("Electronics", "", "Cafeteria", "silver laptop", "dell xps", base.Add(20*24*time.Hour))

	s := ScorePair(a, b, DefaultWindowDays)
	assert.Less(t, s.Total, 0.3)
}
