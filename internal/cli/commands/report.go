package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"LostFound/internal/cli/api"
	"LostFound/internal/cli/auth"
	"LostFound/internal/config"
)

type reportRequest struct {
	Kind              string `json:"kind"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Color             string `json:"color,omitempty"`
	Location          string `json:"location"`
	OccurredAt        string `json:"occurred_at"`
	ChallengeQuestion string `json:"challenge_question,omitempty"`
	ChallengeAnswer   string `json:"challenge_answer,omitempty"`
}

type reportResponse struct {
	Item    itemView        `json:"item"`
	Matches []candidateView `json:"matches"`
}

type reportCmd struct{}

func (reportCmd) Name() string        { return "report" }
func (reportCmd) Description() string { return "Report a lost or found item" }
func (reportCmd) Usage() string {
	return "report <lost|found> -title T -desc D -category C -location L -date YYYY-MM-DD [-color X] [-question Q -answer A]"
}

func (reportCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	kind := strings.ToLower(args[0])
	if kind != "lost" && kind != "found" {
		return ErrUsage
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(Out)
	title := fs.String("title", "", "item title")
	desc := fs.String("desc", "", "item description")
	category := fs.String("category", "", "item category")
	color := fs.String("color", "", "item color")
	location := fs.String("location", "", "where it was lost/found")
	date := fs.String("date", "", "date lost/found (YYYY-MM-DD)")
	question := fs.String("question", "", "security question (found items)")
	answer := fs.String("answer", "", "security answer (found items)")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}
	if *title == "" || *desc == "" || *category == "" || *location == "" || *date == "" {
		return ErrUsage
	}
	occurred, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("invalid -date (want YYYY-MM-DD): %w", err)
	}

	req := reportRequest{
		Kind:              kind,
		Title:             *title,
		Description:       *desc,
		Category:          *category,
		Color:             *color,
		Location:          *location,
		OccurredAt:        occurred.UTC().Format(time.RFC3339),
		ChallengeQuestion: *question,
		ChallengeAnswer:   *answer,
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items"
	token, _ := auth.LoadToken()
	resp, body, err := api.PostJSON(endpoint, req, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr reportResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Reported %s item %q, id=%s\n", kind, rr.Item.Title, rr.Item.ID)
	printCandidates(rr.Matches)
	return nil
}

func init() { RegisterCmd(reportCmd{}) }
