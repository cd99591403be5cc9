package calendar

import (
	"encoding/json"
	"fmt"

	"ai-growth-planner/internal/plan"
	"ai-growth-planner/internal/storage"
)

// Checklist maintains per-day/per-task completion flags for one plan
// identity. Every toggle is written through to the store immediately; there
// is no batching.
type Checklist struct {
	store    storage.Store
	identity string
	checks   map[string]bool
}

// LoadChecklist reads the persisted completion state for the plan's identity.
// An absent or corrupt entry yields an empty checklist, never an error.
func LoadChecklist(store storage.Store, p *plan.Plan) *Checklist {
	c := &Checklist{
		store:    store,
		identity: plan.Identity(p),
		checks:   map[string]bool{},
	}
	if raw, ok := store.Get(storage.ChecksKey(c.identity)); ok {
		var parsed map[string]bool
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil && parsed != nil {
			c.checks = parsed
		}
	}
	return c
}

// CheckKey is the composite key for one task slot on one day.
func CheckKey(day, task int) string {
	return fmt.Sprintf("d%d_t%d", day, task)
}

// Identity returns the plan identity this checklist is scoped to.
func (c *Checklist) Identity() string {
	return c.identity
}

// Done reports whether the task at (day, task) is checked off.
func (c *Checklist) Done(day, task int) bool {
	return c.checks[CheckKey(day, task)]
}

// Toggle flips the flag at (day, task), creating it if absent, and persists
// the full mapping before returning. The new value is returned.
func (c *Checklist) Toggle(day, task int) (bool, error) {
	key := CheckKey(day, task)
	c.checks[key] = !c.checks[key]
	data, err := json.Marshal(c.checks)
	if err != nil {
		return c.checks[key], fmt.Errorf("failed to marshal completion state: %w", err)
	}
	if err := c.store.Set(storage.ChecksKey(c.identity), string(data)); err != nil {
		return c.checks[key], fmt.Errorf("failed to persist completion state: %w", err)
	}
	return c.checks[key], nil
}

// Reset clears the in-memory mapping and deletes the persisted entry.
func (c *Checklist) Reset() error {
	c.checks = map[string]bool{}
	if err := c.store.Remove(storage.ChecksKey(c.identity)); err != nil {
		return fmt.Errorf("failed to reset completion state: %w", err)
	}
	return nil
}

// Map returns a copy of the current completion mapping.
func (c *Checklist) Map() map[string]bool {
	out := make(map[string]bool, len(c.checks))
	for k, v := range c.checks {
		out[k] = v
	}
	return out
}
