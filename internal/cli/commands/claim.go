package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"LostFound/internal/cli/api"
	"LostFound/internal/cli/auth"
	"LostFound/internal/config"
)

type claimRequest struct {
	Answer string `json:"answer"`
}

type contactView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type claimResponse struct {
	Outcome           string       `json:"outcome"`
	AttemptsRemaining int          `json:"attempts_remaining"`
	FinderContact     *contactView `json:"finder_contact"`
	Note              string       `json:"note"`
}

type claimCmd struct{}

func (claimCmd) Name() string        { return "claim" }
func (claimCmd) Description() string { return "Answer the security question of a found item" }
func (claimCmd) Usage() string       { return "claim <item-id> <answer...>" }

func (claimCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	itemID := args[0]
	answer := strings.Join(args[1:], " ")

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items/" + itemID + "/claim"
	token, _ := auth.LoadToken()
	resp, body, err := api.PostJSON(endpoint, claimRequest{Answer: answer}, token)
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

	var cr claimResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	switch cr.Outcome {
	case "success":
		fmt.Fprintln(Out, "Correct! The item is yours to pick up.")
		if cr.FinderContact != nil {
			fmt.Fprintf(Out, "Finder: %s, Email: %s", cr.FinderContact.Name, cr.FinderContact.Email)
			if cr.FinderContact.Phone != "" {
				fmt.Fprintf(Out, ", Phone: %s", cr.FinderContact.Phone)
			}
			fmt.Fprintln(Out)
		}
		if cr.Note != "" {
			fmt.Fprintln(Out, cr.Note)
		}
	case "failure":
		fmt.Fprintf(Out, "Wrong answer. Attempts remaining: %d\n", cr.AttemptsRemaining)
	case "exhausted":
		fmt.Fprintln(Out, "No attempts left for this item.")
	default:
		fmt.Fprintf(Out, "Outcome: %s\n", cr.Outcome)
	}
	return nil
}

func init() { RegisterCmd(claimCmd{}) }
