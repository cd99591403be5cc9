// Package app wires the planner, calendar, storage, and export components
// behind one facade used by the HTTP API, the CLI, and the Telegram bot.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-growth-planner/internal/calendar"
	"ai-growth-planner/internal/clipper"
	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/export"
	"ai-growth-planner/internal/ghost"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/metrics"
	"ai-growth-planner/internal/plan"
	"ai-growth-planner/internal/planner"
	"ai-growth-planner/internal/shared"
	"ai-growth-planner/internal/storage"
)

var (
	// ErrEmptyIdea is returned when generation is requested without an idea.
	// No provider call is made in that case.
	ErrEmptyIdea = errors.New("idea is required")
	// ErrNoPlan is returned when no plan is persisted yet.
	ErrNoPlan = errors.New("no plan has been generated yet")
	// ErrNoProvider is returned when the text provider is not configured.
	ErrNoProvider = errors.New("no text provider configured")
	// ErrNoPublisher is returned when Ghost publishing is not configured.
	ErrNoPublisher = errors.New("ghost publishing is not configured")
)

// App holds the application's dependencies. Generator, clipper, ghost client,
// and metrics store may be nil when their configuration is absent; the
// corresponding operations then fail with a sentinel error.
type App struct {
	cfg          *config.Config
	log          *logger.Logger
	store        storage.Store
	generator    *planner.Generator
	briefClipper *clipper.Clipper
	ghostClient  ghost.Client
	metricsStore *metrics.Store
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	log *logger.Logger,
	store storage.Store,
	generator *planner.Generator,
	briefClipper *clipper.Clipper,
	ghostClient ghost.Client,
	metricsStore *metrics.Store,
) *App {
	return &App{
		cfg:          cfg,
		log:          log,
		store:        store,
		generator:    generator,
		briefClipper: briefClipper,
		ghostClient:  ghostClient,
		metricsStore: metricsStore,
	}
}

// GeneratePlan runs one generation request and persists the resulting plan
// as the latest plan. A failed generation leaves the previously persisted
// plan and completion state untouched.
func (a *App) GeneratePlan(ctx context.Context, idea string, inputs plan.Inputs) (plan.Plan, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return plan.Plan{}, ErrEmptyIdea
	}
	if a.generator == nil {
		return plan.Plan{}, ErrNoProvider
	}

	result, err := a.generator.Generate(ctx, idea, inputs)
	a.recordMeta(result.Meta)
	if err != nil {
		return plan.Plan{}, err
	}

	data, err := json.Marshal(result.Plan)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := a.store.Set(storage.LatestPlanKey, string(data)); err != nil {
		return plan.Plan{}, fmt.Errorf("failed to persist plan: %w", err)
	}

	a.log.Info("plan generated", "id", result.Plan.ID, "idea", result.Plan.Idea)
	return result.Plan, nil
}

// LatestPlan loads and re-normalizes the persisted plan. ErrNoPlan is
// returned when the slot is empty or unreadable.
func (a *App) LatestPlan() (*plan.Plan, error) {
	raw, ok := a.store.Get(storage.LatestPlanKey)
	if !ok {
		return nil, ErrNoPlan
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, ErrNoPlan
	}
	p := plan.Normalize(parsed, "", plan.Inputs{})
	return &p, nil
}

// ClearPlan removes the persisted plan. Completion state is left in place;
// it has its own lifecycle and reset operation.
func (a *App) ClearPlan() error {
	return a.store.Remove(storage.LatestPlanKey)
}

// Calendar derives the 14-day calendar for the latest plan (or the canned
// calendar when none exists) together with its completion checklist.
func (a *App) Calendar() ([]calendar.Day, *calendar.Checklist) {
	p, err := a.LatestPlan()
	if err != nil {
		p = nil
	}
	return calendar.DeriveDays(p), calendar.LoadChecklist(a.store, p)
}

// ToggleCheck flips the completion flag for one task slot and persists it.
func (a *App) ToggleCheck(day, task int) (bool, error) {
	if day < 1 || day > calendar.TotalDays {
		return false, fmt.Errorf("day %d out of range 1..%d", day, calendar.TotalDays)
	}
	if task < 0 {
		return false, fmt.Errorf("task index %d out of range", task)
	}
	_, checklist := a.Calendar()
	return checklist.Toggle(day, task)
}

// ResetChecks clears the completion state of the latest plan.
func (a *App) ResetChecks() error {
	_, checklist := a.Calendar()
	return checklist.Reset()
}

// ClipURL extracts a business brief from a web page for form prefill.
func (a *App) ClipURL(ctx context.Context, url string) (*clipper.Brief, error) {
	if a.briefClipper == nil {
		return nil, ErrNoProvider
	}
	brief, meta, err := a.briefClipper.ClipURL(ctx, url)
	a.recordMeta(meta)
	if err != nil {
		return nil, err
	}
	return brief, nil
}

// PublishPlan renders the latest plan to HTML and creates a draft post on
// the configured Ghost blog.
func (a *App) PublishPlan() (*ghost.Post, error) {
	if a.ghostClient == nil {
		return nil, ErrNoPublisher
	}
	p, err := a.LatestPlan()
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("14-Day Growth Plan: %s", p.Idea)
	post, err := a.ghostClient.CreatePost(title, export.PlanHTML(p), false)
	if err != nil {
		return nil, fmt.Errorf("failed to publish plan: %w", err)
	}
	a.log.Info("plan published", "post_id", post.ID, "title", post.Title)
	return post, nil
}

// ExportPlanText renders the latest plan as clipboard-ready plain text.
func (a *App) ExportPlanText() (string, error) {
	p, err := a.LatestPlan()
	if err != nil {
		return "", err
	}
	return export.PlanText(p), nil
}

// ExportCalendarText renders the derived calendar as plain text.
func (a *App) ExportCalendarText() string {
	days, _ := a.Calendar()
	return export.CalendarText(days)
}

// MetricsStore exposes the metrics store for reporting commands. May be nil.
func (a *App) MetricsStore() *metrics.Store {
	return a.metricsStore
}

func (a *App) recordMeta(meta shared.AgentMeta) {
	if a.metricsStore == nil || meta.AgentName == "" {
		return
	}
	if err := a.metricsStore.RecordMeta(meta); err != nil {
		a.log.Warn("failed to record metrics", "agent", meta.AgentName, "error", err)
	}
}
