package gemini_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/infrastructure/ai/gemini"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// GeminiClientTestSuite provides a test suite for the generation client
type GeminiClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

// SetupSuite initializes the test suite
func (suite *GeminiClientTestSuite) SetupSuite() {
	suite.ctx = context.Background()
}

// newClient builds a client pointed at the given stub server
func (suite *GeminiClientTestSuite) newClient(baseURL string) *gemini.Client {
	return gemini.NewClient(&config.AIConfig{
		BaseURL:         baseURL,
		Model:           "gemini-2.5-flash",
		APIKey:          "test-key",
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 2048,
		Timeout:         5 * time.Second,
	}, zap.NewNop())
}

// TestGenerate tests the successful generation path
func (suite *GeminiClientTestSuite) TestGenerate() {
	suite.Run("ValidResponse_ShouldJoinAndTrimParts", func() {
		var gotPath, gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"## Recipe Name\nSoup "},{"text":" ## Instructions\nSimmer."}]},"finishReason":"STOP"}]}`))
		}))
		defer server.Close()

		result, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"tomato", "basil"})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
		assert.Equal(suite.T(), "test-key", gotKey)
		assert.Equal(suite.T(), "STOP", result.FinishReason)
		// Parts joined with newlines, outer whitespace trimmed
		assert.Equal(suite.T(), "## Recipe Name\nSoup \n ## Instructions\nSimmer.", result.Text)
	})

	suite.Run("RequestBody_ShouldCarryPromptAndSettings", func() {
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}]}`))
		}))
		defer server.Close()

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"rice", "egg"})

		require.NoError(suite.T(), err)
		body := string(gotBody)
		assert.Contains(suite.T(), body, "rice, egg")
		assert.Contains(suite.T(), body, `"maxOutputTokens":2048`)
		assert.Contains(suite.T(), body, "HARM_CATEGORY_DANGEROUS_CONTENT")
		assert.Contains(suite.T(), body, "BLOCK_MEDIUM_AND_ABOVE")
	})

	suite.Run("EmptyIngredients_ShouldFailWithoutRequest", func() {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		result, err := suite.newClient(server.URL).Generate(suite.ctx, nil)

		assert.Nil(suite.T(), result)
		assert.Equal(suite.T(), apperrors.CodeBadRequest, apperrors.GetCode(err))
		assert.False(suite.T(), called, "no upstream call for an empty ingredient list")
	})
}

// TestGenerateFailures tests the error mapping, in upstream precedence order
func (suite *GeminiClientTestSuite) TestGenerateFailures() {
	suite.Run("UpstreamStructuredError_ShouldPropagateStatusAndMessage", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
		}))
		defer server.Close()

		result, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		assert.Nil(suite.T(), result)
		appErr := err.(*apperrors.AppError)
		assert.Equal(suite.T(), apperrors.CodeUpstreamError, appErr.Code)
		assert.Equal(suite.T(), http.StatusTooManyRequests, appErr.StatusCode())
		assert.Equal(suite.T(), "Resource has been exhausted", appErr.Message)
		assert.Contains(suite.T(), appErr.Details, "RESOURCE_EXHAUSTED")
	})

	suite.Run("UpstreamUnparsableError_ShouldUseGenericMessage", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`backend exploded`))
		}))
		defer server.Close()

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		appErr := err.(*apperrors.AppError)
		assert.Equal(suite.T(), http.StatusInternalServerError, appErr.StatusCode())
		assert.Equal(suite.T(), "recipe generation failed", appErr.Message)
	})

	suite.Run("MalformedSuccessBody_ShouldReturnBadGateway", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": [`))
		}))
		defer server.Close()

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		assert.Equal(suite.T(), apperrors.CodeBadGateway, apperrors.GetCode(err))
		assert.Equal(suite.T(), "invalid response format", err.(*apperrors.AppError).Message)
	})

	suite.Run("NoCandidates_ShouldReturnInternal", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		assert.Equal(suite.T(), apperrors.CodeInternal, apperrors.GetCode(err))
		assert.Equal(suite.T(), "no content generated", err.(*apperrors.AppError).Message)
	})

	suite.Run("SafetyFinish_ShouldReturnBadRequestWithRatings", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"finishReason":"SAFETY","safetyRatings":[{"category":"HARM_CATEGORY_DANGEROUS_CONTENT","probability":"HIGH"}]}]}`))
		}))
		defer server.Close()

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		appErr := err.(*apperrors.AppError)
		assert.Equal(suite.T(), apperrors.CodeBadRequest, appErr.Code)
		assert.NotNil(suite.T(), appErr.Metadata["safetyRatings"])
	})

	suite.Run("UnreachableServer_ShouldReturnBadGateway", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // shut down before the call

		_, err := suite.newClient(server.URL).Generate(suite.ctx, []string{"beans"})

		assert.Equal(suite.T(), apperrors.CodeBadGateway, apperrors.GetCode(err))
	})
}

// TestGeminiClientTestSuite runs the test suite
func TestGeminiClientTestSuite(t *testing.T) {
	suite.Run(t, new(GeminiClientTestSuite))
}
