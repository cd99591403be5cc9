package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/plan"
	"ai-growth-planner/internal/shared"
)

//go:embed generator_prompt.md
var generatorPrompt string

type generatorPromptData struct {
	Idea   string
	Inputs plan.Inputs
}

// Generator turns a business idea into a normalized 3-step growth plan via
// the text provider.
type Generator struct {
	textGen llm.TextGenerator
}

// NewGenerator creates a new Generator instance.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen}
}

// Result carries the normalized plan and the execution metadata of the
// underlying provider call.
type Result struct {
	Plan plan.Plan
	Meta shared.AgentMeta
}

// Generate calls the provider once and normalizes whatever parseable JSON it
// returns into a canonical plan. Only transport failures and unparseable
// output are errors; a structurally odd but parseable response is absorbed
// by normalization.
func (g *Generator) Generate(ctx context.Context, idea string, inputs plan.Inputs) (Result, error) {
	start := time.Now()

	prompt, err := buildGeneratorPrompt(generatorPromptData{Idea: idea, Inputs: inputs})
	if err != nil {
		return Result{}, err
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate plan from provider: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "Generator",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var raw any
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &raw); err != nil {
		return Result{Meta: meta}, fmt.Errorf(
			"failed to parse provider response: %w. Response: %s",
			err,
			resp.Content,
		)
	}

	return Result{
		Plan: plan.Normalize(raw, idea, inputs),
		Meta: meta,
	}, nil
}

func buildGeneratorPrompt(data generatorPromptData) (string, error) {
	tmpl, err := template.New("generator").Parse(generatorPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// stripCodeFence removes a surrounding markdown code block when the provider
// ignores the no-fencing instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
