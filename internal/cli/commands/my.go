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

type myCmd struct{}

func (myCmd) Name() string        { return "my" }
func (myCmd) Description() string { return "List my items (all statuses)" }
func (myCmd) Usage() string       { return "my" }

func (myCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items/my"
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
	var list []itemView
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	for _, it := range list {
		printItemLine(it)
	}
	return nil
}

func init() { RegisterCmd(myCmd{}) }
