package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Jupiter price API.
	DefaultBaseURL   = "https://api.jup.ag/price/v2"
	defaultBatchSize = 100
	defaultTimeout   = 30 * time.Second
)

// Config controls the price client.
type Config struct {
	BaseURL   string
	BatchSize int
	Timeout   time.Duration
}

// Client fetches USD prices for token mints.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

type priceResponse struct {
	Data map[string]*priceEntry `json:"data"`
}

type priceEntry struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Price json.RawMessage `json:"price"`
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Prices returns USD prices keyed by mint. Mints without a price are omitted.
// A failed batch is logged and skipped; the error reports the last failure.
func (c *Client) Prices(ctx context.Context, mints []string) (map[string]float64, error) {
	out := make(map[string]float64, len(mints))
	var lastErr error
	for _, batch := range SplitBatches(mints, c.cfg.BatchSize) {
		prices, err := c.fetchBatch(ctx, batch)
		if err != nil {
			c.logger.Warn("price batch failed", zap.Int("mints", len(batch)), zap.Error(err))
			lastErr = err
			continue
		}
		for mint, p := range prices {
			out[mint] = p
		}
	}
	return out, lastErr
}

func (c *Client) fetchBatch(ctx context.Context, mints []string) (map[string]float64, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse price url: %w", err)
	}
	query := endpoint.Query()
	query.Set("ids", strings.Join(mints, ","))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed priceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}

	out := make(map[string]float64, len(parsed.Data))
	for mint, entry := range parsed.Data {
		if entry == nil {
			continue
		}
		p, ok := parsePrice(entry.Price)
		if !ok {
			continue
		}
		out[mint] = p
	}
	return out, nil
}

// parsePrice accepts both quoted and bare numbers.
func parsePrice(raw json.RawMessage) (float64, bool) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0, false
	}
	p, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
