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

type notificationView struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedItemID string    `json:"related_item_id"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

type feedResponse struct {
	Notifications []notificationView `json:"notifications"`
	UnreadCount   int                `json:"unread_count"`
}

type notificationsCmd struct{}

func (notificationsCmd) Name() string        { return "notifications" }
func (notificationsCmd) Description() string { return "Show notifications; mark them read" }
func (notificationsCmd) Usage() string       { return "notifications [read <id> | read-all]" }

func (c notificationsCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	token, _ := auth.LoadToken()
	base := strings.TrimRight(cfg.ServerURL, "/")

	if len(args) > 0 {
		switch args[0] {
		case "read":
			if len(args) != 2 {
				return ErrUsage
			}
			return c.post(base+"/api/notifications/"+args[1]+"/read", token)
		case "read-all":
			if len(args) != 1 {
				return ErrUsage
			}
			return c.post(base+"/api/notifications/read-all", token)
		default:
			return ErrUsage
		}
	}

	resp, body, err := api.GetJSON(base+"/api/notifications", token)
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
	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(feed.Notifications) == 0 {
		fmt.Fprintln(Out, "No notifications")
		return nil
	}
	for _, n := range feed.Notifications {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(Out, "%s [%d] %s — %s\n", mark, n.ID, n.Title, n.Message)
	}
	fmt.Fprintf(Out, "Unread: %d\n", feed.UnreadCount)
	return nil
}

func (notificationsCmd) post(url, token string) error {
	resp, body, err := api.PostJSON(url, struct{}{}, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("not logged in (run 'login' first)")
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	fmt.Fprintln(Out, "Done")
	return nil
}

func init() { RegisterCmd(notificationsCmd{}) }
