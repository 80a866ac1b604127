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

type attemptStatusView struct {
	AttemptsUsed      int  `json:"attempts_used"`
	AttemptsRemaining int  `json:"attempts_remaining"`
	CanAttempt        bool `json:"can_attempt"`
}

type attemptsCmd struct{}

func (attemptsCmd) Name() string        { return "attempts" }
func (attemptsCmd) Description() string { return "Show how many claim attempts are left" }
func (attemptsCmd) Usage() string       { return "attempts <item-id>" }

func (attemptsCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items/" + args[0] + "/claim-attempts"
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
	var st attemptStatusView
	if err := json.Unmarshal(body, &st); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Used: %d, remaining: %d\n", st.AttemptsUsed, st.AttemptsRemaining)
	if !st.CanAttempt {
		fmt.Fprintln(Out, "No attempts left for this item.")
	}
	return nil
}

func init() { RegisterCmd(attemptsCmd{}) }
