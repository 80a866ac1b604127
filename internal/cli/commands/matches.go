package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"LostFound/internal/cli/api"
	"LostFound/internal/cli/auth"
	"LostFound/internal/config"
)

type matchView struct {
	ID             string    `json:"id"`
	LostItemID     string    `json:"lost_item_id"`
	FoundItemID    string    `json:"found_item_id"`
	Score          float64   `json:"score"`
	CategoryMatch  bool      `json:"category_match"`
	ColorMatch     bool      `json:"color_match"`
	LocationMatch  bool      `json:"location_match"`
	DateProximity  float64   `json:"date_proximity"`
	TextSimilarity float64   `json:"text_similarity"`
	Notified       bool      `json:"notified"`
	CreatedAt      time.Time `json:"created_at"`
}

type matchesCmd struct{}

func (matchesCmd) Name() string        { return "matches" }
func (matchesCmd) Description() string { return "Show recorded matches for an item" }
func (matchesCmd) Usage() string       { return "matches <item-id>" }

func (matchesCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items/" + args[0] + "/matches"
	token, _ := auth.LoadToken()
	resp, body, err := api.GetJSON(endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("not logged in (run 'login' first)")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var list []matchView
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No matches recorded")
		return nil
	}
	for _, m := range list {
		fmt.Fprintf(Out, "- score=%.2f  lost=%s  found=%s  date_proximity=%.2f  text=%.2f\n",
			m.Score, m.LostItemID, m.FoundItemID, m.DateProximity, m.TextSimilarity)
	}
	return nil
}

func init() { RegisterCmd(matchesCmd{}) }
