package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/reflex/internal/model"
)

// Config holds news settings. Timeout zero means no deadline.
type Config struct {
	APIKey   string
	KeyEnv   string
	Endpoint string
	Model    string
	Prompt   string
	Timeout  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		KeyEnv:   DefaultKeyEnv,
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
		Prompt:   DefaultPrompt,
	}
}

// Service fetches headlines.
type Service struct {
	cfg    Config
	client Client
}

// NewService builds a Service. A nil client selects the Gemini client.
func NewService(cfg Config, client Client) *Service {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.KeyEnv == "" {
		cfg.KeyEnv = DefaultKeyEnv
	}
	if client == nil {
		client = NewGeminiClient(cfg)
	}
	return &Service{cfg: cfg, client: client}
}

// Fetch requests the latest headlines.
func (s *Service) Fetch(ctx context.Context) ([]model.NewsItem, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, ErrMissingConfig
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	ans, err := s.client.Search(ctx, s.cfg.Prompt)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("news fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	items := ParseHeadlines(ans.Text, ans.Links)
	log.Debug().Int("items", len(items)).Int("links", len(ans.Links)).Dur("elapsed", time.Since(start)).Msg("news fetched")
	if len(items) == 0 {
		return nil, ErrNoHeadlines
	}
	return items, nil
}

// Describe turns a fetch error into the text shown in the panel.
func (s *Service) Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingConfig):
		return fmt.Sprintf("Missing API configuration. Please set the %s environment variable.", s.cfg.KeyEnv)
	case errors.Is(err, ErrNoHeadlines):
		return "No headlines found."
	default:
		return "Unable to sync with news servers."
	}
}
