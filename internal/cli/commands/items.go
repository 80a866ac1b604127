package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"LostFound/internal/cli/api"
	"LostFound/internal/config"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List active items on the server" }
func (itemsCmd) Usage() string       { return "items [-kind lost|found] [-category C] [-search S]" }

func (itemsCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(Out)
	kind := fs.String("kind", "", "filter by kind: lost | found")
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "substring search in title/description")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	q := url.Values{}
	if *kind != "" {
		q.Set("kind", *kind)
	}
	if *category != "" {
		q.Set("category", *category)
	}
	if *search != "" {
		q.Set("search", *search)
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items"
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	resp, body, err := api.GetJSON(endpoint, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
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
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(itemsCmd{}) }
