package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "time"

  "go.opentelemetry.io/otel"
  "go.opentelemetry.io/otel/attribute"
  "go.opentelemetry.io/otel/codes"
  "go.opentelemetry.io/otel/trace"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

// GrokClient is the raw completion transport. Complete makes exactly one
// request: upstream failures surface as *apperr.UpstreamError and are never
// retried here. The scheduled sweeps are the retry mechanism.
type GrokClient interface {
  Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, model string) (string, error)
  DefaultModel() string
  ResumeModel() string
}

type grokClient struct {
  httpClient  *http.Client
  baseURL     string
  apiKey      string
  model       string
  resumeModel string
  log         *logger.Logger
}

func NewGrokClient(log *logger.Logger) GrokClient {
  clientLog := log.With("service", "GrokClient")
  timeoutSeconds := utils.GetEnvAsInt("XAI_TIMEOUT_SECONDS", 300, log)
  return &grokClient{
    httpClient:  &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
    baseURL:     utils.GetEnv("XAI_BASE_URL", "https://api.x.ai/v1", log),
    apiKey:      utils.GetEnv("XAI_API_KEY", "", log),
    model:       utils.GetEnv("XAI_MODEL", "grok-4-1-fast-reasoning", log),
    resumeModel: utils.GetEnv("XAI_RESUME_MODEL", "grok-4-fast", log),
    log:         clientLog,
  }
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatRequest struct {
  Model       string        `json:"model"`
  Messages    []chatMessage `json:"messages"`
  Temperature float64       `json:"temperature"`
  Stream      bool          `json:"stream"`
}

type chatResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func (c *grokClient) DefaultModel() string { return c.model }
func (c *grokClient) ResumeModel() string  { return c.resumeModel }

func (c *grokClient) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, model string) (content string, err error) {
  if model == "" {
    model = c.model
  }

  // Completions run anywhere from one second to minutes, so each call gets
  // its own span.
  ctx, span := otel.Tracer("grok").Start(ctx, "grok.completion", trace.WithAttributes(
    attribute.String("llm.model", model),
    attribute.Float64("llm.temperature", temperature),
  ))
  defer func() {
    if err != nil {
      span.RecordError(err)
      span.SetStatus(codes.Error, err.Error())
    }
    span.End()
  }()

  payload := chatRequest{
    Model: model,
    Messages: []chatMessage{
      {Role: "system", Content: systemPrompt},
      {Role: "user", Content: userPrompt},
    },
    Temperature: temperature,
    Stream:      false,
  }
  body, err := json.Marshal(payload)
  if err != nil {
    return "", fmt.Errorf("failed to encode chat request: %w", err)
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
  if err != nil {
    return "", fmt.Errorf("failed to build chat request: %w", err)
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("Authorization", "Bearer "+c.apiKey)

  start := time.Now()
  resp, err := c.httpClient.Do(req)
  if err != nil {
    c.log.Warn("Completion request failed", "model", model, "error", err)
    return "", &apperr.UpstreamError{Body: err.Error()}
  }
  defer resp.Body.Close()

  respBody, err := io.ReadAll(resp.Body)
  if err != nil {
    return "", &apperr.UpstreamError{StatusCode: resp.StatusCode, Body: err.Error()}
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    c.log.Warn("Completion backend returned error status", "model", model, "status", resp.StatusCode)
    return "", &apperr.UpstreamError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 500)}
  }

  var parsed chatResponse
  if err := json.Unmarshal(respBody, &parsed); err != nil {
    return "", &apperr.UpstreamError{StatusCode: resp.StatusCode, Body: "malformed completion response: " + err.Error()}
  }
  if len(parsed.Choices) == 0 {
    return "", &apperr.UpstreamError{StatusCode: resp.StatusCode, Body: "completion response had no choices"}
  }

  c.log.Debug("Completion finished", "model", model, "duration_ms", time.Since(start).Milliseconds())
  return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
  if len(s) <= n {
    return s
  }
  return s[:n]
}




