package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"reviewlens-backend/lib/telemetry"
	"reviewlens-backend/services/analytics"
)

var tracer = otel.Tracer("services/reports")

// Config points the report service at an OpenAI-compatible
// chat-completions endpoint.
type Config struct {
	BaseUrl string `json:"base_url"`
	Model   string `json:"model"`
	ApiKey  string `json:"api_key"`
}

type Service struct {
	client    *resty.Client
	config    Config
	analytics *analytics.Service
}

func NewService(config Config, analyticsSvc *analytics.Service) *Service {
	client := resty.New()
	client.SetBaseURL(config.BaseUrl)
	client.SetTimeout(time.Second * 90)
	if config.ApiKey != "" {
		client.SetAuthToken(config.ApiKey)
	}
	telemetry.InstrumentResty(client, "services/reports")

	return &Service{
		client:    client,
		config:    config,
		analytics: analyticsSvc,
	}
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
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate summarizes the brand's filtered review set through the
// configured model and returns the summary text.
func (s *Service) Generate(ctx context.Context, brand string, filter analytics.Filter) (string, error) {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()
	span.SetAttributes(attribute.String("brand", brand))

	if s.config.BaseUrl == "" || s.config.Model == "" {
		return "", fmt.Errorf("report generation is not configured")
	}

	dash, err := s.analytics.BuildDashboard(ctx, brand, filter)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if dash.TotalReviews == 0 {
		return "", fmt.Errorf("no reviews match the requested filters for brand %q", brand)
	}
	page, err := s.analytics.ListReviews(ctx, brand, filter, 1, sampleSize)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	prompt, err := buildPrompt(brand, dash, page.Reviews)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	var parsed chatResponse
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: s.config.Model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&parsed).
		SetError(&parsed).
		Post("/chat/completions")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "chat completion request failed")
		return "", err
	}
	if res.IsError() {
		msg := res.Status()
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		err := fmt.Errorf("chat completion failed: %s", msg)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "chat completion failed")
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}
