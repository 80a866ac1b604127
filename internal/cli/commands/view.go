package commands

import (
	"fmt"
	"strings"
	"time"
)

// itemView — объявление в ответах сервера.
type itemView struct {
	ID                string    `json:"id"`
	UserID            int64     `json:"user_id"`
	Kind              string    `json:"kind"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Color             string    `json:"color,omitempty"`
	Location          string    `json:"location"`
	OccurredAt        time.Time `json:"occurred_at"`
	Status            string    `json:"status"`
	ChallengeQuestion string    `json:"challenge_question,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type scoreView struct {
	Total          float64 `json:"total"`
	CategoryMatch  bool    `json:"category_match"`
	ColorMatch     bool    `json:"color_match"`
	LocationMatch  bool    `json:"location_match"`
	DateProximity  float64 `json:"date_proximity"`
	TextSimilarity float64 `json:"text_similarity"`
}

type candidateView struct {
	Item  itemView  `json:"item"`
	Score scoreView `json:"score"`
}

func printItemLine(it itemView) {
	fmt.Fprintf(Out, "- [%s] %s  (%s, %s)  id=%s  status=%s\n",
		it.Kind, it.Title, it.Category, it.OccurredAt.Format("2006-01-02"), it.ID, it.Status)
}

func printItemFull(it itemView) {
	fmt.Fprintf(Out, "ID:          %s\n", it.ID)
	fmt.Fprintf(Out, "Kind:        %s\n", it.Kind)
	fmt.Fprintf(Out, "Title:       %s\n", it.Title)
	fmt.Fprintf(Out, "Description: %s\n", it.Description)
	fmt.Fprintf(Out, "Category:    %s\n", it.Category)
	if it.Color != "" {
		fmt.Fprintf(Out, "Color:       %s\n", it.Color)
	}
	fmt.Fprintf(Out, "Location:    %s\n", it.Location)
	fmt.Fprintf(Out, "Date:        %s\n", it.OccurredAt.Format("2006-01-02"))
	fmt.Fprintf(Out, "Status:      %s\n", it.Status)
	if it.ChallengeQuestion != "" {
		fmt.Fprintf(Out, "Question:    %s\n", it.ChallengeQuestion)
	}
}

func printCandidates(cands []candidateView) {
	if len(cands) == 0 {
		fmt.Fprintln(Out, "No matches found")
		return
	}
	fmt.Fprintf(Out, "Found %d potential match(es):\n", len(cands))
	for i, c := range cands {
		signals := make([]string, 0, 3)
		if c.Score.CategoryMatch {
			signals = append(signals, "category")
		}
		if c.Score.ColorMatch {
			signals = append(signals, "color")
		}
		if c.Score.LocationMatch {
			signals = append(signals, "location")
		}
		fmt.Fprintf(Out, "%d. %s  score=%.2f  matched: %s  id=%s\n",
			i+1, c.Item.Title, c.Score.Total, strings.Join(signals, ","), c.Item.ID)
	}
}
