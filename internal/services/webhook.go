package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorOrange = 16753920 // #FFA500 - awaiting review

	Username = "CollabSphere"
)

// WebhookRelay announces new project submissions to the admin Discord and
// Slack channels. Either URL may be empty.
type WebhookRelay struct {
	DiscordURL string
	SlackURL   string
	Client     *http.Client
	ClientURL  string
}

func NewWebhookRelay(discordURL, slackURL, clientURL string) *WebhookRelay {
	return &WebhookRelay{
		DiscordURL: discordURL,
		SlackURL:   slackURL,
		ClientURL:  clientURL,
		Client:     &http.Client{Timeout: relayTimeout},
	}
}

// Enabled reports whether at least one channel is configured.
func (r *WebhookRelay) Enabled() bool {
	return r != nil && (r.DiscordURL != "" || r.SlackURL != "")
}

func (r *WebhookRelay) ProjectSubmitted(ctx context.Context, project models.Project, owner models.User) error {
	if r.DiscordURL != "" {
		if err := r.send(ctx, r.DiscordURL, discordSubmission(project, owner, r.ClientURL)); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if r.SlackURL != "" {
		if err := r.send(ctx, r.SlackURL, slackSubmission(project, owner, r.ClientURL)); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func submissionFacts(project models.Project) (deadline, amount string) {
	deadline = "None"
	if project.Deadline != nil {
		deadline = project.Deadline.UTC().Format("2006-01-02 15:04 UTC")
	}
	amount = fmt.Sprintf("%.2f", project.Amount)
	return deadline, amount
}

func discordSubmission(project models.Project, owner models.User, clientURL string) DiscordWebhookRequest {
	deadline, amount := submissionFacts(project)

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "📝 **NEW PROJECT AWAITING REVIEW**",
				Description: fmt.Sprintf("**%s** was submitted by %s.", project.Title, owner.Name),
				Color:       ColorOrange,
				Fields: []DiscordWebhookField{
					{Name: "👤 Owner", Value: owner.Name, Inline: true},
					{Name: "👥 People Needed", Value: fmt.Sprintf("%d", project.RequiredPeople), Inline: true},
					{Name: "💰 Amount", Value: amount, Inline: true},
					{Name: "⏰ Deadline", Value: deadline, Inline: true},
					{Name: "🔗 Review", Value: clientURL + "/admin.html", Inline: false},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Project #%d | CollabSphere", project.ID),
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}
}

func slackSubmission(project models.Project, owner models.User, clientURL string) SlackWebhookRequest {
	deadline, amount := submissionFacts(project)

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":memo:",
		Text:      ":memo: *NEW PROJECT AWAITING REVIEW*",
		Attachments: []SlackAttachment{
			{
				Color: "warning",
				Title: fmt.Sprintf("'%s' was submitted by %s", project.Title, owner.Name),
				Text:  project.Description,
				Fields: []SlackField{
					{Title: "People Needed", Value: fmt.Sprintf("%d", project.RequiredPeople), Short: true},
					{Title: "Amount", Value: amount, Short: true},
					{Title: "Deadline", Value: deadline, Short: false},
					{Title: "Review", Value: clientURL + "/admin.html", Short: false},
				},
				Footer:    fmt.Sprintf("Project #%d", project.ID),
				Timestamp: time.Now().Unix(),
			},
		},
	}
}

func (r *WebhookRelay) send(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
