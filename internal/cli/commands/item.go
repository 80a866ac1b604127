package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"LostFound/internal/cli/api"
	"LostFound/internal/config"
)

type itemCmd struct{}

func (itemCmd) Name() string        { return "item" }
func (itemCmd) Description() string { return "Show one item by id" }
func (itemCmd) Usage() string       { return "item <id>" }

func (itemCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items/" + args[0]
	resp, body, err := api.GetJSON(endpoint, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("item %s not found", args[0])
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var it itemView
	if err := json.Unmarshal(body, &it); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	printItemFull(it)
	return nil
}

func init() { RegisterCmd(itemCmd{}) }
