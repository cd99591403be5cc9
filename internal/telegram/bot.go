// Package telegram exposes the planner through a Telegram bot: send an idea,
// get a plan; manage the 14-day calendar and completion state with commands.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/plan"
)

const helpText = `Send me a one-line business idea and I will reply with a 3-step growth plan.

Commands:
/plan - show the current plan
/calendar - show the 14-day task calendar
/done <day> <task> - toggle a task, e.g. /done 3 1
/reset - clear all checkmarks
/clear - delete the current plan
Send a URL to extract a business brief from a web page.`

// Bot wraps the Telegram API and the application facade.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
	log *logger.Logger
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, application *app.App, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Info("authorized on telegram", "account", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Info("webhook set", "response", resp.Description)

	return &Bot{api: api, app: application, cfg: cfg, log: log}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.log.Warn("error parsing update", "error", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		b.log.Warn("unauthorized access attempt",
			"user_id", update.Message.From.ID,
			"user_name", update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.reply(msg.Chat.ID, helpText)
	case text == "/plan":
		b.handleShowPlan(msg.Chat.ID)
	case text == "/calendar":
		b.reply(msg.Chat.ID, b.app.ExportCalendarText())
	case strings.HasPrefix(text, "/done"):
		b.handleDone(msg.Chat.ID, text)
	case text == "/reset":
		b.handleReset(msg.Chat.ID)
	case text == "/clear":
		b.handleClear(msg.Chat.ID)
	case text == "/metrics":
		b.handleMetrics(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClip(msg.Chat.ID, text)
	default:
		b.handleGenerate(msg.Chat.ID, text)
	}
}

func (b *Bot) handleShowPlan(chatID int64) {
	text, err := b.app.ExportPlanText()
	if err != nil {
		b.reply(chatID, "No plan yet. Send me a business idea to get started.")
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) handleGenerate(chatID int64, idea string) {
	b.reply(chatID, "Working on your growth plan...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := b.app.GeneratePlan(ctx, idea, plan.Inputs{}); err != nil {
		b.log.Error("plan generation failed", "error", err)
		b.reply(chatID, "Plan generation failed. Please try again in a moment.")
		return
	}

	text, err := b.app.ExportPlanText()
	if err != nil {
		b.reply(chatID, "Plan generated but could not be rendered.")
		return
	}
	b.reply(chatID, text)
	b.reply(chatID, "Send /calendar to see your 14-day task calendar.")
}

func (b *Bot) handleDone(chatID int64, text string) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		b.reply(chatID, "Usage: /done <day> <task>, e.g. /done 3 1")
		return
	}
	day, errDay := strconv.Atoi(fields[1])
	task, errTask := strconv.Atoi(fields[2])
	if errDay != nil || errTask != nil {
		b.reply(chatID, "Usage: /done <day> <task>, e.g. /done 3 1")
		return
	}

	done, err := b.app.ToggleCheck(day, task)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}
	state := "unchecked"
	if done {
		state = "checked"
	}
	b.reply(chatID, fmt.Sprintf("Day %d, task %d is now %s.", day, task, state))
}

func (b *Bot) handleReset(chatID int64) {
	if err := b.app.ResetChecks(); err != nil {
		b.reply(chatID, "Failed to reset checkmarks.")
		return
	}
	b.reply(chatID, "All checkmarks cleared.")
}

func (b *Bot) handleClear(chatID int64) {
	if err := b.app.ClearPlan(); err != nil {
		b.reply(chatID, "Failed to clear the plan.")
		return
	}
	b.reply(chatID, "Plan cleared. Send a new idea whenever you are ready.")
}

func (b *Bot) handleClip(chatID int64, url string) {
	b.reply(chatID, "Reading the page...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brief, err := b.app.ClipURL(ctx, url)
	if err != nil {
		b.log.Error("clip failed", "url", url, "error", err)
		b.reply(chatID, "Could not extract a business brief from that page.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Here is what I found:\n")
	fmt.Fprintf(&sb, "Idea: %s\n", brief.Idea)
	for _, row := range [][2]string{
		{"Customer", brief.Customer},
		{"Offer", brief.Offer},
		{"Differentiator", brief.Differentiator},
		{"Price", brief.Price},
		{"Geography", brief.Geography},
		{"Goal", brief.Goal},
		{"Notes", brief.Notes},
	} {
		if row[1] != "" {
			fmt.Fprintf(&sb, "%s: %s\n", row[0], row[1])
		}
	}
	sb.WriteString("\nSend the idea back to me (edited if you like) to generate the plan.")
	b.reply(chatID, sb.String())
}

func (b *Bot) handleMetrics(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "Access denied: admin only.")
		return
	}
	store := b.app.MetricsStore()
	if store == nil {
		b.reply(msg.Chat.ID, "Metrics are not enabled.")
		return
	}
	usage, err := store.GetDailyUsage(7)
	if err != nil {
		b.reply(msg.Chat.ID, "Failed to read metrics.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Token usage, last 7 days:\n")
	for _, u := range usage {
		fmt.Fprintf(&sb, "%s: %d prompt / %d completion (%d calls)\n",
			u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecution)
	}
	if len(usage) == 0 {
		sb.WriteString("No recorded calls.\n")
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("failed to send telegram message", "error", err)
	}
}
