package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venturescope/models"

	"github.com/go-resty/resty/v2"
)

// ErrMalformedResponse marks a completion that came back but could not be
// decoded into the requested shape. The raw text is kept on the Result.
var ErrMalformedResponse = errors.New("completion response did not match the requested schema")

// Result is the outcome of one evaluation call. Exactly one branch is set:
// Analysis on success, Raw (the undecodable model output) on a schema failure.
type Result struct {
	Analysis *models.StartupAnalysis
	Raw      string
}

// Ok reports whether the evaluation produced a usable analysis.
func (r Result) Ok() bool {
	return r.Analysis != nil
}

// Analyzer scores a startup profile. Implemented by OpenAIClient in
// production and stubbed in handler tests.
type Analyzer interface {
	Analyze(ctx context.Context, profile *models.StartupProfile) (Result, error)
}

const systemPrompt = "You are an expert VC analyst specializing in startup evaluation."

// The schema is requested of the model via instruction only; conformance is
// checked locally after decoding.
const promptTemplate = `Analyze this startup data and provide a detailed assessment with scores and recommendations. Return the analysis in JSON format with the following structure:
{
  "scores": {
    "marketPotential": number, // 1-10
    "teamStrength": number,
    "productInnovation": number,
    "competitiveAdvantage": number,
    "financialViability": number
  },
  "analysis": {
    "strengths": string[],
    "weaknesses": string[],
    "opportunities": string[],
    "threats": string[]
  },
  "recommendations": string[],
  "riskLevel": "low" | "medium" | "high",
  "investmentPotential": "strong" | "moderate" | "weak"
}

Startup Data:
%s`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient calls the chat-completions API. One blocking request per
// Analyze call: no caching, no retry, no streaming.
type OpenAIClient struct {
	http  *resty.Client
	model string
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(timeout)

	return &OpenAIClient{http: client, model: model}
}

// BuildPrompt serializes the profile into the instruction template. Only
// business fields go out; the submission key and row id never leave the
// process.
func BuildPrompt(profile *models.StartupProfile) (string, error) {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}
	return fmt.Sprintf(promptTemplate, string(data)), nil
}

func (c *OpenAIClient) Analyze(ctx context.Context, profile *models.StartupProfile) (Result, error) {
	prompt, err := BuildPrompt(profile)
	if err != nil {
		return Result{}, err
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	var respBody chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(&respBody).
		Post("/chat/completions")
	if err != nil {
		return Result{}, fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		if respBody.Error != nil {
			return Result{}, fmt.Errorf("completion service returned %d: %s", resp.StatusCode(), respBody.Error.Message)
		}
		return Result{}, fmt.Errorf("completion service returned %d", resp.StatusCode())
	}
	if len(respBody.Choices) == 0 || respBody.Choices[0].Message.Content == "" {
		return Result{}, fmt.Errorf("completion service returned no content")
	}

	content := respBody.Choices[0].Message.Content

	var analysis models.StartupAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return Result{Raw: content}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := analysis.Validate(); err != nil {
		return Result{Raw: content}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return Result{Analysis: &analysis}, nil
}
