// Package quoteapi is a minimal client for the market-data vendor's REST
// API: session login secured with TOTP, token refresh, and single-symbol
// quote fetches returning normalized bars.
package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stock-advisor/internal/model"

	"github.com/pquerna/otp/totp"
	"github.com/shopspring/decimal"
)

const defaultRoot = "https://api.quotes.example.com"

var routes = map[string]string{
	"auth.login":   "/v1/auth/login",
	"auth.refresh": "/v1/auth/refresh",
	"quote":        "/v1/quote",
}

// Config holds vendor credentials and client options.
type Config struct {
	APIKey     string
	ClientCode string
	Password   string
	TOTPSecret string

	RootURL string        // default: defaultRoot
	Timeout time.Duration // default: 7s
}

// Client is a session-holding REST client. Not safe for concurrent logins;
// quote fetches after login are safe to run in parallel.
type Client struct {
	cfg          Config
	rootURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

// New creates a client; it does not log in.
func New(cfg Config) *Client {
	root := cfg.RootURL
	if root == "" {
		root = defaultRoot
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 7 * time.Second
	}
	return &Client{
		cfg:        cfg,
		rootURL:    root,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	ClientCode string `json:"client_code"`
	Password   string `json:"password"`
	TOTP       string `json:"totp"`
}

type tokenResponse struct {
	Status       bool   `json:"status"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	FeedToken    string `json:"feed_token"`
}

// Login generates a fresh TOTP code from the shared secret and opens a
// session.
func (c *Client) Login(ctx context.Context) error {
	code, err := totp.GenerateCode(c.cfg.TOTPSecret, time.Now())
	if err != nil {
		return fmt.Errorf("quoteapi: generate totp: %w", err)
	}

	var resp tokenResponse
	err = c.post(ctx, routes["auth.login"], loginRequest{
		ClientCode: c.cfg.ClientCode,
		Password:   c.cfg.Password,
		TOTP:       code,
	}, &resp)
	if err != nil {
		return fmt.Errorf("quoteapi: login: %w", err)
	}
	if !resp.Status {
		return fmt.Errorf("quoteapi: login rejected: %s", resp.Message)
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

// RefreshSession exchanges the refresh token for a new access token.
func (c *Client) RefreshSession(ctx context.Context) error {
	var resp tokenResponse
	err := c.post(ctx, routes["auth.refresh"], map[string]string{
		"refresh_token": c.refreshToken,
	}, &resp)
	if err != nil {
		return fmt.Errorf("quoteapi: refresh: %w", err)
	}
	if !resp.Status {
		return fmt.Errorf("quoteapi: refresh rejected: %s", resp.Message)
	}
	c.accessToken = resp.AccessToken
	return nil
}

type quoteResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Symbol        string          `json:"symbol"`
		CompanyName   string          `json:"company_name"`
		LastPrice     decimal.Decimal `json:"last_price"`
		Change        decimal.Decimal `json:"change"`
		PercentChange decimal.Decimal `json:"percent_change"`
		Open          decimal.Decimal `json:"open"`
		DayHigh       decimal.Decimal `json:"day_high"`
		DayLow        decimal.Decimal `json:"day_low"`
		PreviousClose decimal.Decimal `json:"previous_close"`
		Volume        int64           `json:"volume"`
		Turnover      decimal.Decimal `json:"turnover"`
		Timestamp     int64           `json:"timestamp"`
	} `json:"data"`
}

// Quote fetches the current snapshot for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (model.Bar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.rootURL+routes["quote"]+"?symbol="+symbol, nil)
	if err != nil {
		return model.Bar{}, fmt.Errorf("quoteapi: build request: %w", err)
	}
	c.setHeaders(req)

	var resp quoteResponse
	if err := c.do(req, &resp); err != nil {
		return model.Bar{}, fmt.Errorf("quoteapi: quote %s: %w", symbol, err)
	}
	if !resp.Status {
		return model.Bar{}, fmt.Errorf("quoteapi: quote %s rejected: %s", symbol, resp.Message)
	}

	d := resp.Data
	ts := time.Unix(d.Timestamp, 0).UTC()
	if d.Timestamp == 0 {
		ts = time.Now().UTC()
	}
	return model.Bar{
		Symbol:        d.Symbol,
		CompanyName:   d.CompanyName,
		LastPrice:     d.LastPrice,
		Change:        d.Change,
		PercentChange: d.PercentChange,
		Open:          d.Open,
		DayHigh:       d.DayHigh,
		DayLow:        d.DayLow,
		PreviousClose: d.PreviousClose,
		Volume:        d.Volume,
		Turnover:      d.Turnover,
		TS:            ts,
	}, nil
}

func (c *Client) post(ctx context.Context, route string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rootURL+route, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}
