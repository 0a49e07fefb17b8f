package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/go-resty/resty/v2"
)

// ErrEmptyAIResponse is returned when the provider answers 2xx but the
// completion contains no usable content.
var ErrEmptyAIResponse = errors.New("ai service returned an empty response")

// instruction per text operation. The document store is never involved:
// the caller feeds results back through its own mutation calls.
var aiInstructions = map[models.AIOperation]string{
	models.AIFix:       "Fix spelling and grammar in the following text. Answer with the corrected text only.",
	models.AIImprove:   "Improve the wording of the following resume text. Keep the meaning. Answer with the improved text only.",
	models.AIExpand:    "Expand the following resume text with more detail. Answer with the expanded text only.",
	models.AITranslate: "Translate the following text to English. Answer with the translation only.",
}

type aiHTTPAdapter struct {
	client *resty.Client
	model  string
	logger *logger.Logger
}

// NewAIAdapter constructs the [AIAdapter] implementation backed by an
// OpenAI-compatible chat completions endpoint.
func NewAIAdapter(cfg config.ClientAI, log *logger.Logger) (AIAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ai adapter: base url is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetAuthToken(cfg.APIKey)

	return &aiHTTPAdapter{client: cli, model: cfg.Model, logger: log}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *aiHTTPAdapter) TransformText(ctx context.Context, op models.AIOperation, text string) (string, error) {
	instruction, ok := aiInstructions[op]
	if !ok {
		return "", fmt.Errorf("unsupported text operation %q", op)
	}

	return a.complete(ctx, instruction, text)
}

func (a *aiHTTPAdapter) AnalyzeCV(ctx context.Context, content models.CVContent) (models.Analysis, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("encode cv for analysis: %w", err)
	}

	instruction := "Review the following CV data. Answer with a JSON object " +
		`{"score":0-100,"strengths":[],"improvements":[],"recommended_roles":[]} and nothing else.`

	answer, err := a.complete(ctx, instruction, string(payload))
	if err != nil {
		return models.Analysis{}, err
	}

	var analysis models.Analysis
	if err = json.Unmarshal([]byte(extractJSON(answer)), &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("decode analysis response: %w", err)
	}

	return analysis, nil
}

func (a *aiHTTPAdapter) ExtractCV(ctx context.Context, text string) (models.CVContent, error) {
	instruction := "Extract structured resume data from the following free-form text. " +
		"Answer with a JSON object matching " +
		`{"personal_info":{},"experiences":[],"educations":[],"skills":[],"languages":[],"hobbies":[],` +
		`"certifications":[],"projects":[],"references":[],"qualities":[],"social_links":[]}` +
		" and nothing else. Leave out anything the text does not mention."

	answer, err := a.complete(ctx, instruction, text)
	if err != nil {
		return models.CVContent{}, err
	}

	var content models.CVContent
	if err = json.Unmarshal([]byte(extractJSON(answer)), &content); err != nil {
		return models.CVContent{}, fmt.Errorf("decode extracted cv: %w", err)
	}

	return content, nil
}

func (a *aiHTTPAdapter) GenerateLetter(ctx context.Context, content models.CVContent, jobDescription string) (models.LetterContent, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return models.LetterContent{}, fmt.Errorf("encode cv for letter generation: %w", err)
	}

	instruction := "Draft a cover letter for the job description below, based on the candidate CV data. " +
		`Answer with a JSON object {"greeting":"","intro":"","body":"","conclusion":"","signature":""} and nothing else.`

	answer, err := a.complete(ctx, instruction, "Job description:\n"+jobDescription+"\n\nCV:\n"+string(payload))
	if err != nil {
		return models.LetterContent{}, err
	}

	var letter models.LetterContent
	if err = json.Unmarshal([]byte(extractJSON(answer)), &letter); err != nil {
		return models.LetterContent{}, fmt.Errorf("decode letter response: %w", err)
	}

	return letter, nil
}

func (a *aiHTTPAdapter) complete(ctx context.Context, instruction, input string) (string, error) {
	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: input},
		},
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("ai completion request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("ai completion: %w", err)
	}

	var completion chatResponse
	if err = json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", fmt.Errorf("decode ai completion: %w", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", ErrEmptyAIResponse
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// extractJSON strips markdown code fences some providers wrap around JSON
// answers.
func extractJSON(answer string) string {
	answer = strings.TrimSpace(answer)
	if strings.HasPrefix(answer, "```") {
		answer = strings.TrimPrefix(answer, "```json")
		answer = strings.TrimPrefix(answer, "```")
		answer = strings.TrimSuffix(answer, "```")
	}
	return strings.TrimSpace(answer)
}
