// Package feed streams live bars from a JSON WebSocket feed into the
// in-memory bar history. The expected wire format matches model.Bar.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"stock-advisor/internal/history"
	"stock-advisor/internal/model"

	"github.com/gorilla/websocket"
)

// Config holds configuration for the bar feed.
type Config struct {
	// URL of the bar WebSocket server, e.g. "ws://localhost:9001/bars"
	URL string

	// Symbols to subscribe after connecting. Empty means the server's
	// default stream.
	Symbols []string

	// ReconnectDelay is the initial delay before reconnection attempts.
	// Defaults to 2 seconds if zero.
	ReconnectDelay time.Duration

	// MaxReconnectDelay caps the exponential backoff. Defaults to 30s.
	MaxReconnectDelay time.Duration
}

func (c *Config) defaults() {
	if c.ReconnectDelay == 0 {
		c.ReconnectDelay = 2 * time.Second
	}
	if c.MaxReconnectDelay == 0 {
		c.MaxReconnectDelay = 30 * time.Second
	}
}

type subscribeMsg struct {
	Action  string   `json:"action"`
	Symbols []string `json:"symbols"`
}

// Ingest connects to the feed and appends incoming bars to the history
// store. Reconnects automatically on disconnect.
type Ingest struct {
	cfg   Config
	store *history.Store

	// Optional hooks for metrics.
	OnBar       func()
	OnReconnect func()
	OnDropped   func()
}

// New creates a new Ingest. Returns an error if the URL is unparseable.
func New(cfg Config, store *history.Store) (*Ingest, error) {
	cfg.defaults()
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, err
	}
	return &Ingest{cfg: cfg, store: store}, nil
}

// Start streams bars into the history store. Blocks until ctx is cancelled.
func (ing *Ingest) Start(ctx context.Context) error {
	delay := ing.cfg.ReconnectDelay

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := ing.runOnce(ctx)
		if err == nil {
			// Context cancelled cleanly
			return nil
		}

		slog.Warn("feed disconnected, reconnecting", "error", err, "delay", delay.String())
		if ing.OnReconnect != nil {
			ing.OnReconnect()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		delay *= 2
		if delay > ing.cfg.MaxReconnectDelay {
			delay = ing.cfg.MaxReconnectDelay
		}
	}
}

// runOnce makes a single connection attempt and reads until disconnect or
// ctx cancel.
func (ing *Ingest) runOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ing.cfg.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.Info("feed connected", "url", ing.cfg.URL)

	if len(ing.cfg.Symbols) > 0 {
		sub := subscribeMsg{Action: "subscribe", Symbols: ing.cfg.Symbols}
		if err := conn.WriteJSON(sub); err != nil {
			return err
		}
		slog.Info("feed subscribed", "symbols", ing.cfg.Symbols)
	}

	// Async context watcher closes the connection when ctx is cancelled.
	// done bounds the watcher to this connection's lifetime so reconnects
	// don't pile up parked goroutines.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"))
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		var bar model.Bar
		if err := json.Unmarshal(raw, &bar); err != nil {
			slog.Warn("feed parse error", "error", err)
			if ing.OnDropped != nil {
				ing.OnDropped()
			}
			continue
		}
		if bar.Symbol == "" {
			if ing.OnDropped != nil {
				ing.OnDropped()
			}
			continue
		}
		if bar.TS.IsZero() {
			bar.TS = time.Now().UTC()
		}

		ing.store.Append(bar)
		if ing.OnBar != nil {
			ing.OnBar()
		}
	}
}
