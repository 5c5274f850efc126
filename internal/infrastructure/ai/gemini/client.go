// Package gemini provides the generative-language API client used for
// recipe generation. It performs a single synchronous request per call;
// failures are never retried here.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/ports/outbound"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

const finishReasonSafety = "SAFETY"

// Client implements the RecipeGenerator interface against the
// generateContent REST endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	genConfig  generationConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new generative-language client from configuration
func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		genConfig: generationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("gemini-client"),
	}
}

// Wire structures for the generateContent endpoint

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content       content        `json:"content"`
	FinishReason  string         `json:"finishReason"`
	SafetyRatings []safetyRating `json:"safetyRatings,omitempty"`
}

type safetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// defaultSafetySettings block medium-and-above content in the four filter
// categories. Fixed at call time, not user-configurable.
var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Generate produces recipe text for the given ingredient list
func (c *Client) Generate(ctx context.Context, ingredients []string) (*outbound.GeneratedRecipe, error) {
	if len(ingredients) == 0 {
		return nil, apperrors.NewBadRequestError("Invalid ingredients array")
	}

	reqBody := generateContentRequest{
		Contents:         []content{{Parts: []part{{Text: buildPrompt(ingredients)}}}},
		GenerationConfig: c.genConfig,
		SafetySettings:   defaultSafetySettings,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode generation request").WithCause(err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create generation request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewBadGatewayError("recipe service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewBadGatewayError("failed to read upstream response").WithCause(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp.StatusCode, body)
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		c.logger.Error("unparsable upstream body",
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, apperrors.NewBadGatewayError("invalid response format").WithCause(err)
	}

	if len(genResp.Candidates) == 0 {
		return nil, apperrors.NewInternalError("no content generated")
	}

	first := genResp.Candidates[0]
	if first.FinishReason == finishReasonSafety {
		return nil, apperrors.
			NewBadRequestError("recipe generation blocked by safety filter").
			WithMetadata("safetyRatings", first.SafetyRatings)
	}

	texts := make([]string, 0, len(first.Content.Parts))
	for _, p := range first.Content.Parts {
		texts = append(texts, p.Text)
	}

	result := &outbound.GeneratedRecipe{
		Text:         strings.TrimSpace(strings.Join(texts, "\n")),
		FinishReason: first.FinishReason,
	}

	c.logger.Info("recipe generated",
		zap.Int("ingredients", len(ingredients)),
		zap.String("finish_reason", result.FinishReason))

	return result, nil
}

// upstreamError maps a non-success upstream status to a client-visible
// failure, preferring the structured message when the body parses.
func (c *Client) upstreamError(status int, body []byte) error {
	message := "recipe generation failed"

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	c.logger.Error("upstream API error",
		zap.Int("status", status),
		zap.String("message", message))

	return apperrors.NewUpstreamError(status, message, string(body))
}

// buildPrompt embeds the ingredient list into the fixed output template
func buildPrompt(ingredients []string) string {
	var b strings.Builder
	b.WriteString("Create a recipe using the following ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(".\n\nFormat the response in markdown with these sections:\n")
	b.WriteString("## Recipe Name\n")
	b.WriteString("## Ingredients\n")
	b.WriteString("## Instructions\n")
	b.WriteString("## Cooking Time\n")
	return b.String()
}
