package clipper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/shared"
)

type mockTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response, Usage: shared.TokenUsage{PromptTokens: 50}}, nil
}

const pageHTML = `<html>
<head><title>Shine Mobile Detailing</title><script>trackVisitors()</script></head>
<body>
<nav>Home | Pricing | Contact</nav>
<h1>Shine Mobile Detailing</h1>
<p>We bring showroom shine to your driveway in Austin. Packages from $99.</p>
<script>console.log("noise")</script>
<footer>Copyright Shine LLC</footer>
</body>
</html>`

const briefResponse = `{
  "idea": "Mobile car detailing in Austin",
  "customer": "busy car owners",
  "offer": "driveway detailing packages",
  "differentiator": "comes to you",
  "price": "from $99",
  "geography": "Austin",
  "goal": "",
  "notes": "packages start at $99"
}`

func TestClipURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(pageHTML))
	}))
	defer server.Close()

	mock := &mockTextGenerator{response: briefResponse}
	c := NewClipper(mock)

	brief, meta, err := c.ClipURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if brief.Idea != "Mobile car detailing in Austin" {
		t.Errorf("idea = %q", brief.Idea)
	}
	if meta.AgentName != "Clipper" {
		t.Errorf("agent = %q", meta.AgentName)
	}
	if meta.Usage.PromptTokens != 50 {
		t.Errorf("usage = %+v", meta.Usage)
	}

	if len(mock.prompts) != 1 {
		t.Fatalf("expected one provider call, got %d", len(mock.prompts))
	}
	prompt := mock.prompts[0]
	if !strings.Contains(prompt, "showroom shine") {
		t.Error("prompt missing page body text")
	}
	if strings.Contains(prompt, "trackVisitors") || strings.Contains(prompt, "console.log") {
		t.Error("script content should be stripped from the prompt")
	}
	if strings.Contains(prompt, "Home | Pricing") || strings.Contains(prompt, "Copyright Shine") {
		t.Error("nav and footer should be stripped from the prompt")
	}

	inputs := brief.Inputs()
	if inputs.Customer != "busy car owners" || inputs.Price != "from $99" {
		t.Errorf("inputs = %+v", inputs)
	}
}

func TestClipURLFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClipper(&mockTextGenerator{response: briefResponse})
	if _, _, err := c.ClipURL(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 page")
	}
}

func TestClipURLUnparseableResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageHTML))
	}))
	defer server.Close()

	c := NewClipper(&mockTextGenerator{response: "not json"})
	_, meta, err := c.ClipURL(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for unparseable provider output")
	}
	if meta.Usage.PromptTokens != 50 {
		t.Errorf("expected usage on parse failure, got %+v", meta.Usage)
	}
}
