package matching

import "LostFound/internal/model"

// Фиксированные веса сигналов. Сумма равна 1.0.
const (
	WeightCategory = 0.30
	WeightColor    = 0.20
	WeightDate     = 0.20
	WeightText     = 0.20
	WeightLocation = 0.10
)

// DefaultWindowDays — горизонт временной близости в днях.
const DefaultWindowDays = 7

// Breakdown — разбивка итогового счёта по сигналам. Сохраняется в Match
// и возвращается клиенту для прозрачности.
type Breakdown struct {
	CategoryMatch  bool    `json:"category_match"`
	ColorMatch     bool    `json:"color_match"`
	LocationMatch  bool    `json:"location_match"`
	DateProximity  float64 `json:"date_proximity"`
	TextSimilarity float64 `json:"text_similarity"`
}

// Score — итоговый счёт пары объявлений в [0,1] и его разбивка.
type Score struct {
	Total float64 `json:"total"`
	Breakdown
}

// ScorePair считает взвешенный счёт пары объявлений противоположных видов.
// Булевы сигналы дают полный вес при истине, непрерывные — вес×значение.
// Результат не зависит от порядка аргументов.
func ScorePair(a, b *model.Item, windowDays float64) Score {
	br := Breakdown{
		CategoryMatch:  CategoryMatch(a, b),
		ColorMatch:     ColorMatch(a, b),
		LocationMatch:  LocationMatch(a, b),
		DateProximity:  DateProximity(a, b, windowDays),
		TextSimilarity: TextSimilarity(a, b),
	}

	var total float64
	if br.CategoryMatch {
		total += WeightCategory
	}
	if br.ColorMatch {
		total += WeightColor
	}
	if br.LocationMatch {
		total += WeightLocation
	}
	total += br.DateProximity * WeightDate
	total += br.TextSimilarity * WeightText

	return Score{Total: total, Breakdown: br}
}
