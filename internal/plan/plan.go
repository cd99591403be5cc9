package plan

// StepCount is the fixed number of steps in every plan.
const StepCount = 3

// Inputs holds the optional business-context fields that accompany an idea.
// Absent fields are empty strings, never null, to simplify downstream
// formatting.
type Inputs struct {
	Customer       string `json:"customer"`
	Offer          string `json:"offer"`
	Differentiator string `json:"differentiator"`
	Price          string `json:"price"`
	Geography      string `json:"geography"`
	Goal           string `json:"goal"`
	Notes          string `json:"notes"`
}

// Step is one of exactly three ordered stages of a plan. List order is
// execution/reading order and must be preserved from the source.
type Step struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	WhatThisDoes []string `json:"whatThisDoes"`
	HowTo        []string `json:"howTo"`
	Output       string   `json:"output"`
}

// Plan is the canonical 3-step growth plan record. Steps always has exactly
// StepCount entries, enforced by Normalize at construction time.
type Plan struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Idea      string `json:"idea"`
	Inputs    Inputs `json:"inputs"`
	Steps     []Step `json:"steps"`
}
