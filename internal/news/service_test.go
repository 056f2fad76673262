package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls  int
	answer Answer
	err    error
	block  bool
}

func (s *stubClient) Search(ctx context.Context, _ string) (Answer, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return Answer{}, ctx.Err()
	}
	return s.answer, s.err
}

func TestFetchMissingConfigMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	svc := NewService(cfg, nil)

	items, err := svc.Fetch(context.Background())
	assert.Nil(t, items)
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Equal(t, int32(0), hits.Load())
	assert.Equal(t,
		"Missing API configuration. Please set the REFLEX_NEWS_API_KEY environment variable.",
		svc.Describe(err))
}

func TestFetchParsesAnswer(t *testing.T) {
	stub := &stubClient{answer: Answer{
		Text:  "1. Headline number one\n2. Headline number two",
		Links: []string{"https://one.example"},
	}}
	svc := NewService(Config{APIKey: "k"}, stub)

	items, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Headline number one", items[0].Title)
	assert.Equal(t, "https://one.example", items[0].URL)
	assert.Equal(t, FallbackURL, items[1].URL)
	assert.Equal(t, 1, stub.calls)
}

func TestFetchEmptyAnswer(t *testing.T) {
	svc := NewService(Config{APIKey: "k"}, &stubClient{answer: Answer{Text: "nothing"}})

	_, err := svc.Fetch(context.Background())
	require.ErrorIs(t, err, ErrNoHeadlines)
	assert.Equal(t, "No headlines found.", svc.Describe(err))
}

func TestFetchTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(Config{APIKey: "k"}, &stubClient{err: boom})

	_, err := svc.Fetch(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Unable to sync with news servers.", svc.Describe(err))
}

func TestFetchTimeoutIsOptIn(t *testing.T) {
	svc := NewService(Config{APIKey: "k", Timeout: 20 * time.Millisecond}, &stubClient{block: true})

	_, err := svc.Fetch(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"1. Something big happened today [1]"}]},` +
			`"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://src.example"}}]}}]}`))
	}))
	defer srv.Close()

	svc := NewService(Config{APIKey: "k", Endpoint: srv.URL}, nil)
	items, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Something big happened today", items[0].Title)
	assert.Equal(t, "https://src.example", items[0].URL)
}
