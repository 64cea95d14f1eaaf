package advisor

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatePattern = `=~^https://generativelanguage\.googleapis\.com/v1beta/models/`

func newMockedAdvisor(t *testing.T) *Advisor {
	t.Helper()
	a := New(Config{APIKey: "test-key", Timeout: time.Second})
	httpmock.ActivateNonDefault(a.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return a
}

// registerModelText registers a responder that wraps text into the
// provider's candidate envelope.
func registerModelText(t *testing.T, text string) {
	t.Helper()
	responder, err := httpmock.NewJsonResponder(http.StatusOK, map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	require.NoError(t, err)
	httpmock.RegisterResponder("POST", generatePattern, responder)
}

func TestClassifyImageParsesResult(t *testing.T) {
	a := newMockedAdvisor(t)
	registerModelText(t, `{"category": "Denim Jacket", "color": "Blue", "celeb_twin": "Rihanna", "styling_tip": "Roll the sleeves."}`)

	got := a.ClassifyImage(context.Background(), []byte{1, 2}, "image/jpeg")
	assert.Equal(t, "Denim Jacket", got.Category)
	assert.Equal(t, "Blue", got.Color)
	assert.Equal(t, "Rihanna", got.CelebTwin)
	assert.Equal(t, "Roll the sleeves.", got.StylingTip)
}

func TestClassifyImageStripsCodeFence(t *testing.T) {
	a := newMockedAdvisor(t)
	registerModelText(t, "```json\n{\"category\": \"Coat\", \"color\": \"Black\", \"celeb_twin\": \"Zendaya\", \"styling_tip\": \"Belt it.\"}\n```")

	got := a.ClassifyImage(context.Background(), []byte{1}, "image/jpeg")
	assert.Equal(t, "Coat", got.Category)
	assert.Equal(t, "Zendaya", got.CelebTwin)
}

func TestClassifyImageNormalizesGenericPersona(t *testing.T) {
	a := newMockedAdvisor(t)

	for _, persona := range []string{"Style Icon", "Icon", "Global Fashion Icon 2024"} {
		registerModelText(t, fmt.Sprintf(`{"category": "Top", "color": "Red", "celeb_twin": %q, "styling_tip": "Tip."}`, persona))

		got := a.ClassifyImage(context.Background(), []byte{1}, "image/jpeg")
		assert.Equal(t, "Fashion Trailblazer", got.CelebTwin, "persona %q", persona)
	}
}

func TestClassifyImageFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Advisor
	}{
		{"missing api key", func(t *testing.T) *Advisor {
			return New(Config{Timeout: time.Second})
		}},
		{"network error", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			httpmock.RegisterResponder("POST", generatePattern,
				httpmock.NewErrorResponder(context.DeadlineExceeded))
			return a
		}},
		{"server error", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			httpmock.RegisterResponder("POST", generatePattern,
				httpmock.NewStringResponder(http.StatusTooManyRequests, "quota"))
			return a
		}},
		{"malformed model text", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			registerModelText(t, "I'm sorry, I can't help with that.")
			return a
		}},
		{"empty candidates", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			httpmock.RegisterResponder("POST", generatePattern,
				httpmock.NewStringResponder(http.StatusOK, `{"candidates": []}`))
			return a
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.setup(t)
			got := a.ClassifyImage(context.Background(), []byte{1}, "image/jpeg")
			assert.Equal(t, fallbackClassification(), got)
		})
	}
}

func TestSuggestUpcycleParsesResult(t *testing.T) {
	a := newMockedAdvisor(t)
	registerModelText(t, `{"project_name": "Tote Bag", "difficulty": "Easy", "steps": ["Cut", "Fold", "Sew", "Decorate"]}`)

	got := a.SuggestUpcycle(context.Background(), "Denim Jacket", "Blue")
	assert.Equal(t, "Tote Bag", got.ProjectName)
	assert.Equal(t, "Easy", got.Difficulty)
	assert.Len(t, got.Steps, 4)
	assert.Equal(t,
		"https://www.youtube.com/results?search_query=DIY+upcycle+Denim+Jacket+into+Tote+Bag+tutorial",
		got.TutorialURL)
}

func TestSuggestUpcycleFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Advisor
	}{
		{"missing api key", func(t *testing.T) *Advisor {
			return New(Config{Timeout: time.Second})
		}},
		{"network error", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			httpmock.RegisterResponder("POST", generatePattern,
				httpmock.NewErrorResponder(context.DeadlineExceeded))
			return a
		}},
		{"malformed model text", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			registerModelText(t, "no json here")
			return a
		}},
		{"empty project", func(t *testing.T) *Advisor {
			a := newMockedAdvisor(t)
			registerModelText(t, `{"project_name": "", "difficulty": "Easy", "steps": []}`)
			return a
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.setup(t)
			got := a.SuggestUpcycle(context.Background(), "Shirt", "White")

			want := fallbackRecipe()
			assert.Equal(t, want.ProjectName, got.ProjectName)
			assert.Equal(t, want.Difficulty, got.Difficulty)
			assert.Equal(t, want.Steps, got.Steps)
			// The tutorial link is derived even for fallback recipes.
			assert.Contains(t, got.TutorialURL, "Custom+Style+Transformation")
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}

func TestTutorialURLEncoding(t *testing.T) {
	got := tutorialURL("T-Shirt & Jeans", "Rug #1")
	assert.Equal(t,
		"https://www.youtube.com/results?search_query=DIY+upcycle+T-Shirt+%26+Jeans+into+Rug+%231+tutorial",
		got)
}
