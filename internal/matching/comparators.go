package matching

import (
	"math"
	"strings"

	"LostFound/internal/model"
)

// Чистые функции-компараторы по отдельным атрибутам пары объявлений.
// Все компараторы симметричны: f(a,b) == f(b,a).

// CategoryMatch — точное совпадение категории, без частичного зачёта.
func CategoryMatch(a, b *model.Item) bool {
	return a.Category == b.Category
}

// ColorMatch — частичное совпадение цвета: одна строка (в нижнем регистре)
// является подстрокой другой. Отсутствие цвета у любой из сторон — нейтрально
// (false, без штрафа).
func ColorMatch(a, b *model.Item) bool {
	return partialMatch(a.Color, b.Color)
}

// LocationMatch — та же политика подстроки, что и для цвета.
func LocationMatch(a, b *model.Item) bool {
	return partialMatch(a.Location, b.Location)
}

// partialMatch — подстрока в любом направлении, без учёта регистра.
// Политика нарочно изолирована в одной функции: при необходимости её можно
// заменить на метрику пересечения токенов, не трогая агрегатор.
func partialMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// DateProximity — близость по времени: 1 при совпадении моментов,
// линейный спад до 0 на горизонте windowDays (дробные дни допустимы).
func DateProximity(a, b *model.Item, windowDays float64) float64 {
	diff := a.OccurredAt.Sub(b.OccurredAt)
	days := math.Abs(diff.Hours()) / 24
	return math.Max(0, 1-days/windowDays)
}

// TextSimilarity — нормированное сходство текстов "title description"
// двух объявлений (в нижнем регистре): коэффициент Дайса по биграммам.
func TextSimilarity(a, b *model.Item) float64 {
	ta := strings.ToLower(a.Title + " " + a.Description)
	tb := strings.ToLower(b.Title + " " + b.Description)
	return diceCoefficient(ta, tb)
}

// diceCoefficient — 2*|пересечение биграмм| / (|биграммы a| + |биграммы b|).
// Симметричен и равен 1 на идентичных строках.
func diceCoefficient(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	var overlap int
	for i := 0; i < len(rb)-1; i++ {
		g := string(rb[i : i+2])
		if bigrams[g] > 0 {
			bigrams[g]--
			overlap++
		}
	}

	return 2 * float64(overlap) / float64(len(ra)-1+len(rb)-1)
}
