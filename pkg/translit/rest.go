package translit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultBaseURL is the public AI4Bharat transliteration endpoint.
const DefaultBaseURL = "https://xlit-api.ai4bharat.org"

// RESTConfig configures the REST transliterator.
type RESTConfig struct {
	// BaseURL of the transliteration service (default: DefaultBaseURL).
	BaseURL string
	// Lang is the target language code (default: "hi").
	Lang string
	// Timeout per request (default: 10s).
	Timeout time.Duration
}

// REST calls a hosted transliteration model over HTTP.
// Results are cached per token for the lifetime of the client, so repeated
// tokens across a batch cost one request. Safe for concurrent use.
type REST struct {
	baseURL string
	lang    string
	client  *http.Client

	mu    sync.RWMutex
	cache map[string]string
}

// NewREST creates a REST transliterator.
func NewREST(cfg RESTConfig) *REST {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	lang := cfg.Lang
	if lang == "" {
		lang = "hi"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &REST{
		baseURL: baseURL,
		lang:    lang,
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[string]string),
	}
}

type restResponse struct {
	Result []string `json:"result"`
}

// Transliterate converts one token via the remote model, preferring the
// top-ranked candidate.
func (r *REST) Transliterate(ctx context.Context, token string) (string, error) {
	r.mu.RLock()
	cached, ok := r.cache[token]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/tl/%s/%s", r.baseURL, r.lang, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transliteration request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transliteration request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transliteration service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transliteration response: %w", err)
	}

	var parsed restResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse transliteration response: %w", err)
	}
	if len(parsed.Result) == 0 {
		return "", fmt.Errorf("transliteration service returned no candidates for %q", token)
	}

	r.mu.Lock()
	r.cache[token] = parsed.Result[0]
	r.mu.Unlock()

	return parsed.Result[0], nil
}

// Name returns the engine identifier.
func (r *REST) Name() string {
	return "ai4bharat-rest"
}

// Available reports whether the client is configured.
func (r *REST) Available() bool {
	return r.baseURL != ""
}
