// Package advisor wraps the external generative AI service behind a total
// interface: every call returns a usable result, falling back to fixed
// defaults when the provider is unavailable or returns garbage.
package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Gemini API endpoint prefix.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is the generative model used for both vision and text calls.
const DefaultModel = "gemini-1.5-flash"

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 10 * time.Second

// fallbackPersona replaces persona labels the model left generic.
const fallbackPersona = "Fashion Trailblazer"

// Config holds the advisor's provider settings, loaded once at process start.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Advisor calls the generative AI provider for image classification and
// upcycling suggestions.
type Advisor struct {
	cfg  Config
	http *http.Client
}

// New creates an Advisor from the given configuration. An empty API key is
// permitted; calls then immediately return their fallback results.
func New(cfg Config) *Advisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Advisor{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Classification is the structured result of analyzing a clothing photo.
type Classification struct {
	Category   string `json:"category"`
	Color      string `json:"color"`
	CelebTwin  string `json:"celeb_twin"`
	StylingTip string `json:"styling_tip"`
}

// Recipe is a generated upcycling project for a garment.
type Recipe struct {
	ProjectName string   `json:"project_name"`
	Difficulty  string   `json:"difficulty"`
	Steps       []string `json:"steps"`
	TutorialURL string   `json:"tutorial_url,omitempty"`
}

func fallbackClassification() Classification {
	return Classification{
		Category:   "Clothing",
		Color:      "Unknown",
		CelebTwin:  "Vibe Detected",
		StylingTip: "Keep it simple and let the item speak for itself.",
	}
}

func fallbackRecipe() Recipe {
	return Recipe{
		ProjectName: "Custom Style Transformation",
		Difficulty:  "Medium",
		Steps: []string{
			"Evaluate the current condition of the fabric.",
			"Mark out a new pattern based on your needs.",
			"Carefully cut and sew edges to prevent fraying.",
			"Add personal embellishments for a unique finish.",
		},
	}
}

const classifyPrompt = `Analyze this clothing item and return ONLY a JSON object.

CRITICAL INSTRUCTIONS for 'celeb_twin':
- You MUST provide the name of a SPECIFIC famous celebrity, fashion icon, or musician.
- DO NOT use generic terms like 'Style Icon'. Be bold and specific.

Return format:
{
    "category": "e.g. Vintage Denim Jacket",
    "color": "e.g. Acid Wash Blue",
    "celeb_twin": "Name of Celebrity",
    "styling_tip": "One professional fashion tip"
}`

// ClassifyImage analyzes a clothing photo into structured attributes. It
// never fails: provider errors, missing credentials and malformed responses
// all yield the fixed fallback classification. A persona label containing
// "Icon" is replaced, so generic model output never reaches the user.
func (a *Advisor) ClassifyImage(ctx context.Context, image []byte, mime string) Classification {
	text, err := a.generate(ctx, []part{
		{Text: classifyPrompt},
		{InlineData: &inlineData{MimeType: mime, Data: base64.StdEncoding.EncodeToString(image)}},
	})
	if err != nil {
		slog.Warn("image classification failed, using fallback", "error", err)
		return fallbackClassification()
	}

	var result Classification
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &result); err != nil {
		slog.Warn("image classification returned malformed JSON, using fallback", "error", err)
		return fallbackClassification()
	}

	if strings.Contains(result.CelebTwin, "Icon") {
		result.CelebTwin = fallbackPersona
	}
	return result
}

const upcyclePromptFormat = `Create a creative upcycling project for a %s %s.
The item is old or damaged. Provide a project name, difficulty level (Easy, Medium, or Hard),
and a list of 4 clear, actionable steps.

Return ONLY a JSON object:
{
    "project_name": "...",
    "difficulty": "...",
    "steps": ["Step 1", "Step 2", "Step 3", "Step 4"]
}`

// SuggestUpcycle generates an upcycling recipe for a garment. It never
// fails: any provider or parsing problem yields the fixed fallback recipe.
// The returned recipe always carries a tutorial search link derived from the
// category and project name.
func (a *Advisor) SuggestUpcycle(ctx context.Context, category, color string) Recipe {
	recipe := fallbackRecipe()

	text, err := a.generate(ctx, []part{
		{Text: fmt.Sprintf(upcyclePromptFormat, color, category)},
	})
	if err != nil {
		slog.Warn("upcycle suggestion failed, using fallback", "error", err)
	} else {
		var parsed Recipe
		if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
			slog.Warn("upcycle suggestion returned malformed JSON, using fallback", "error", err)
		} else if parsed.ProjectName == "" || len(parsed.Steps) == 0 {
			slog.Warn("upcycle suggestion incomplete, using fallback")
		} else {
			recipe = parsed
		}
	}

	recipe.TutorialURL = tutorialURL(category, recipe.ProjectName)
	return recipe
}

// tutorialURL builds a YouTube search link for the upcycling project.
func tutorialURL(category, projectName string) string {
	query := fmt.Sprintf("DIY upcycle %s into %s tutorial", category, projectName)
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

// stripCodeFence removes markdown code-fence markers the model sometimes
// wraps around its JSON output.
func stripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the first text part
// of the first candidate.
func (a *Advisor) generate(ctx context.Context, parts []part) (string, error) {
	if a.cfg.APIKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []part `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = parts

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		a.cfg.BaseURL, a.cfg.Model, url.QueryEscape(a.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
