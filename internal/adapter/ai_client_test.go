package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIAdapter(t *testing.T, serverURL string) AIAdapter {
	t.Helper()

	a, err := NewAIAdapter(config.ClientAI{BaseURL: serverURL, Model: "test-model"}, logger.Nop())
	require.NoError(t, err)
	return a
}

// completionServer answers every chat completion request with the given
// assistant message content.
func completionServer(t *testing.T, content string, gotRequest *chatRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		if gotRequest != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotRequest))
		}

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: content}})

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestTransformText_Success(t *testing.T) {
	var got chatRequest
	srv := completionServer(t, "  Improved text.  ", &got)
	defer srv.Close()

	a := newTestAIAdapter(t, srv.URL)
	out, err := a.TransformText(context.Background(), models.AIImprove, "improve me")

	require.NoError(t, err)
	assert.Equal(t, "Improved text.", out)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "improve me", got.Messages[1].Content)
}

func TestTransformText_UnsupportedOperation(t *testing.T) {
	a := newTestAIAdapter(t, "http://localhost:1")

	_, err := a.TransformText(context.Background(), "summon", "text")
	require.Error(t, err)
}

func TestExtractCV_Success(t *testing.T) {
	answer := "```json\n" +
		`{"personal_info":{"first_name":"Jane","last_name":"Doe"},` +
		`"experiences":[{"company":"ACME","position":"Engineer"}],` +
		`"skills":[{"name":"Go","level":4}]}` +
		"\n```"
	var got chatRequest
	srv := completionServer(t, answer, &got)
	defer srv.Close()

	a := newTestAIAdapter(t, srv.URL)
	content, err := a.ExtractCV(context.Background(), "Jane Doe, engineer at ACME, knows Go")

	require.NoError(t, err)
	assert.Equal(t, "Jane", content.PersonalInfo.FirstName)
	require.Len(t, content.Experiences, 1)
	assert.Equal(t, "ACME", content.Experiences[0].Company)
	require.Len(t, content.Skills, 1)
	assert.Equal(t, "Go", content.Skills[0].Name)

	// The raw text travels as the user message; the extraction rules sit in
	// the system message.
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Jane Doe")
}

func TestExtractCV_MalformedAnswer(t *testing.T) {
	srv := completionServer(t, "sorry, I can not do that", nil)
	defer srv.Close()

	a := newTestAIAdapter(t, srv.URL)
	_, err := a.ExtractCV(context.Background(), "some resume text")
	require.Error(t, err)
}

func TestExtractCV_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	a := newTestAIAdapter(t, srv.URL)
	_, err := a.ExtractCV(context.Background(), "some resume text")
	assert.ErrorIs(t, err, ErrEmptyAIResponse)
}
