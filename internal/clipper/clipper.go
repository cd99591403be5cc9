// Package clipper extracts a business brief from a public web page so the
// generation form can be prefilled from an existing site or listing.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/plan"
	"ai-growth-planner/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// Brief is the business context structured by the AI from page content.
type Brief struct {
	Idea           string `json:"idea"`
	Customer       string `json:"customer"`
	Offer          string `json:"offer"`
	Differentiator string `json:"differentiator"`
	Price          string `json:"price"`
	Geography      string `json:"geography"`
	Goal           string `json:"goal"`
	Notes          string `json:"notes"`
}

// Inputs converts the brief into generation-form inputs.
func (b Brief) Inputs() plan.Inputs {
	return plan.Inputs{
		Customer:       b.Customer,
		Offer:          b.Offer,
		Differentiator: b.Differentiator,
		Price:          b.Price,
		Geography:      b.Geography,
		Goal:           b.Goal,
		Notes:          b.Notes,
	}
}

// Clipper fetches a URL and extracts a business brief from it.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts the business brief using AI.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Brief, shared.AgentMeta, error) {
	start := time.Now()

	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, shared.AgentMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a business analyst. Extract a short business brief from the following
web page content. Infer conservatively; leave a field as an empty string when
the page gives no signal for it.
Return the result strictly as a JSON object with this structure:
{
  "idea": "one-line description of the business",
  "customer": "who it serves",
  "offer": "what it sells",
  "differentiator": "what sets it apart",
  "price": "price point if stated",
  "geography": "where it operates",
  "goal": "any stated near-term goal",
  "notes": "anything else noteworthy, one or two sentences"
}

Page content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "Clipper",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var brief Brief
	if err := json.Unmarshal([]byte(resp.Content), &brief); err != nil {
		return nil, meta, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}

	return &brief, meta, nil
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save provider tokens.
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
