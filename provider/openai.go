package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fluxlocale/weft"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements AIProvider using OpenAI's chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	strictShape bool
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)

	// LenientShape disables the structural check of the translated output
	// against the input projection. The check is on by default; without it
	// the backend's output shape is trusted as-is and reconciliation falls
	// back to positional matching downstream.
	LenientShape bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	// Low but non-zero: deterministic enough to limit drift between runs,
	// loose enough for fluent phrasing.
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		strictShape: !cfg.LenientShape,
	}
}

// Translate sends a projection to OpenAI and returns the translated
// structure. Validation failures never reach the network; backend failures
// come back as weft error kinds with the raw response preserved where one
// exists.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (*weft.TranslationResult, error) {
	if req.Projection.IsEmpty() {
		return nil, &weft.InvalidInputError{Message: "no content to translate"}
	}
	if req.TargetTag == "" {
		return nil, &weft.InvalidInputError{Message: "no target language specified"}
	}
	if p.apiKey == "" {
		return nil, &weft.InvalidInputError{Message: "translation API key is missing"}
	}

	userMessage, err := buildUserMessage(req.Projection)
	if err != nil {
		return nil, &weft.InvalidInputError{Message: fmt.Sprintf("projection does not serialize: %v", err)}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &weft.BackendError{Message: "translation request failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &weft.EmptyResponseError{}
	}

	result, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	if p.strictShape {
		if err := weft.ValidateShape(req.Projection, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// buildSystemPrompt assembles the translation instruction: persona, target
// language, terminology preservation rules, and the same-shape requirement.
func buildSystemPrompt(req TranslateRequest) string {
	target := weft.LanguageName(req.TargetTag)
	if target != req.TargetTag {
		target = fmt.Sprintf("%s (%s)", target, req.TargetTag)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional translator with 20 years of experience.
Translate only the "text" values in the JSON to %s.
Follow these rules when translating:
`, target)

	if req.BrandPrefix != "" {
		fmt.Fprintf(&b, "\n- When encountering the word %q and any succeeding word, analyze the context and based on it, keep it in the source language. For example, \"%s Blog\", \"%s Life\" and \"%s App\" stay untranslated.\n",
			req.BrandPrefix, req.BrandPrefix, req.BrandPrefix, req.BrandPrefix)
	}

	if len(req.PreservedTerms) > 0 {
		fmt.Fprintf(&b, "- Keep product names such as %s exactly as they appear in the source, regardless of the target language.\n",
			strings.Join(req.PreservedTerms, ", "))
	}

	b.WriteString(`- Do not translate HTML tags, attributes, URLs or any JSON keys; preserve the markup exactly.

Keep all other JSON structure and values exactly the same: the same "nodes" array, the same "nodeId" and "propertyId" values, in the same order.
Return only the JSON, no explanations.`)

	return b.String()
}

// buildUserMessage serializes the full projection as the task payload.
func buildUserMessage(p weft.Projection) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return "Translate this JSON content. Original JSON:\n" + string(data), nil
}

// parseResponse decodes the completion body into a translated structure.
// Markdown code fences are stripped first; models occasionally wrap JSON in
// them despite instructions.
func parseResponse(content string) (*weft.TranslationResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &weft.EmptyResponseError{}
	}

	stripped := stripCodeFence(content)

	var result weft.TranslationResult
	if err := json.Unmarshal([]byte(stripped), &result); err == nil && len(result.Nodes) > 0 {
		return &result, nil
	}

	// Some completions return the bare node array instead of the object.
	var nodes []weft.ProjectedNode
	if err := json.Unmarshal([]byte(stripped), &nodes); err == nil && len(nodes) > 0 {
		return &weft.TranslationResult{Nodes: nodes}, nil
	}

	var probe interface{}
	if err := json.Unmarshal([]byte(stripped), &probe); err != nil {
		return nil, &weft.MalformedResponseError{Raw: content, Cause: err}
	}
	return nil, &weft.MalformedResponseError{
		Raw:   content,
		Cause: fmt.Errorf("response parses but carries no nodes"),
	}
}

// stripCodeFence removes a surrounding ``` block, including an optional
// language token.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Verify OpenAIProvider implements AIProvider
var _ AIProvider = (*OpenAIProvider)(nil)
