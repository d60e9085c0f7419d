package provider

import (
	"context"
	"fmt"

	"github.com/fluxlocale/weft"
)

// MockProvider is a mock translation backend for testing. It mirrors the
// request projection's shape exactly and substitutes text from its
// translation map, so shape-sensitive callers behave as with a well-behaved
// backend.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
	Err          error             // If set, returned instead of a result
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Trade with confidence": "Opera con confianza",
			"Deriv Bot is great":    "Deriv Bot es genial",
			"Start now":             "Empieza ahora",
		},
	}
}

// Translate returns the projection with mock-translated text values.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (*weft.TranslationResult, error) {
	m.CallCount++
	reqCopy := req
	m.LastRequest = &reqCopy

	if m.Err != nil {
		return nil, m.Err
	}
	if req.Projection.IsEmpty() {
		return nil, &weft.InvalidInputError{Message: "no content to translate"}
	}
	if req.TargetTag == "" {
		return nil, &weft.InvalidInputError{Message: "no target language specified"}
	}

	result := &weft.TranslationResult{}
	for _, n := range req.Projection.Nodes {
		out := weft.ProjectedNode{NodeID: n.NodeID}
		if len(n.Overrides) > 0 {
			for _, ov := range n.Overrides {
				out.Overrides = append(out.Overrides, weft.ProjectedOverride{
					PropertyID: ov.PropertyID,
					Text:       m.translate(ov.Text),
				})
			}
		} else {
			out.Text = m.translate(n.Text)
		}
		result.Nodes = append(result.Nodes, out)
	}
	return result, nil
}

func (m *MockProvider) translate(text string) string {
	if t, ok := m.Translations[text]; ok {
		return t
	}
	// Bracketed text marks untranslated strings in test output.
	return fmt.Sprintf("[%s]", text)
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements AIProvider
var _ AIProvider = (*MockProvider)(nil)
