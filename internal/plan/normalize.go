package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// leadingMarker matches a run of bullet/numbering markers (hyphen, bullet
// dot, digits followed by "." or ")") at the start of a line, plus any
// trailing whitespace.
var leadingMarker = regexp.MustCompile(`^(?:[-•]|\d+[.)])+\s*`)

// Normalize coerces arbitrary, untrusted structured input (provider output or
// stored state) into a canonical Plan with exactly StepCount steps. Malformed
// or missing fields degrade to safe defaults; Normalize has no failure path.
func Normalize(raw any, ideaFallback string, inputsFallback Inputs) Plan {
	obj, _ := raw.(map[string]any)

	p := Plan{
		ID:        asText(obj["id"]),
		CreatedAt: asText(obj["createdAt"]),
		Idea:      asText(obj["idea"]),
	}
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if p.Idea == "" {
		p.Idea = strings.TrimSpace(ideaFallback)
	}

	nested, _ := obj["inputs"].(map[string]any)
	p.Inputs = Inputs{
		Customer:       pickInput(nested, obj, "customer", inputsFallback.Customer),
		Offer:          pickInput(nested, obj, "offer", inputsFallback.Offer),
		Differentiator: pickInput(nested, obj, "differentiator", inputsFallback.Differentiator),
		Price:          pickInput(nested, obj, "price", inputsFallback.Price),
		Geography:      pickInput(nested, obj, "geography", inputsFallback.Geography),
		Goal:           pickInput(nested, obj, "goal", inputsFallback.Goal),
		Notes:          pickInput(nested, obj, "notes", inputsFallback.Notes),
	}

	rawSteps, _ := obj["steps"].([]any)
	p.Steps = make([]Step, StepCount)
	for i := 0; i < StepCount; i++ {
		p.Steps[i] = Step{
			Title:        fmt.Sprintf("Step %d", i+1),
			WhatThisDoes: []string{},
			HowTo:        []string{},
		}
		if i >= len(rawSteps) {
			continue
		}
		s, _ := rawSteps[i].(map[string]any)
		if title := asText(s["title"]); title != "" {
			p.Steps[i].Title = title
		}
		p.Steps[i].Summary = asText(s["summary"])
		p.Steps[i].WhatThisDoes = ToList(s["whatThisDoes"])
		p.Steps[i].HowTo = ToList(s["howTo"])
		p.Steps[i].Output = asText(s["output"])
	}

	return p
}

// ToList coerces a value into an ordered list of task strings. Lists are
// stringified element-wise with empties dropped; a single string is split on
// newlines with leading bullet/numbering markers stripped, so both
// array-shaped and prose-shaped provider output are tolerated. Any other
// type yields an empty list.
func ToList(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := asText(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, line := range strings.Split(val, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(leadingMarker.ReplaceAllString(line, ""))
			if line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// NewID synthesizes a fresh plan id. Uniqueness is best-effort, not
// cryptographic.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("plan-%d-%s", time.Now().UnixMilli(), suffix)
}

// pickInput resolves one input field: nested inputs object first, then the
// top-level field (legacy/alternate shape tolerance), then the caller
// fallback.
func pickInput(nested, top map[string]any, key, fallback string) string {
	if s := asText(nested[key]); s != "" {
		return s
	}
	if s := asText(top[key]); s != "" {
		return s
	}
	return strings.TrimSpace(fallback)
}

// asText extracts a trimmed string from an arbitrary JSON-decoded scalar.
func asText(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
