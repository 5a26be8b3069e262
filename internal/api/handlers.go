// Package api exposes the advisor over plain HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stock-advisor/internal/history"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/numutil"
	"stock-advisor/internal/service"
)

// SetCORS sets CORS headers for REST endpoints.
func SetCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RegisterRoutes registers all HTTP routes on the provided mux.
func RegisterRoutes(mux *http.ServeMux, svc *service.Service, store *history.Store) {
	// GET /api/analyze?symbol=RELIANCE
	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			writeError(w, http.StatusBadRequest, "missing symbol")
			return
		}
		bars := store.Snapshot(symbol)
		if bars == nil {
			writeError(w, http.StatusNotFound, "unknown symbol: "+symbol)
			return
		}

		ctx := logger.WithTraceID(r.Context(), logger.NewTraceID(symbol, time.Now()))
		res := svc.Analyze(ctx, symbol, bars)

		res.Confidence = res.Confidence.Round(numutil.DisplayScale)
		for i := range res.Strategies {
			res.Strategies[i].Confidence = res.Strategies[i].Confidence.Round(numutil.DisplayScale)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})

	// GET /api/predict?symbol=RELIANCE
	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			writeError(w, http.StatusBadRequest, "missing symbol")
			return
		}
		bars := store.Snapshot(symbol)
		if bars == nil {
			writeError(w, http.StatusNotFound, "unknown symbol: "+symbol)
			return
		}

		ctx := logger.WithTraceID(r.Context(), logger.NewTraceID(symbol, time.Now()))
		res := svc.Predict(ctx, symbol, bars)

		res.Confidence = res.Confidence.Round(numutil.DisplayScale)
		res.TargetPrice = res.TargetPrice.Round(numutil.DisplayScale)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})

	// GET /api/symbols: tracked symbols with bar counts
	mux.HandleFunc("/api/symbols", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		type symbolInfo struct {
			Symbol string `json:"symbol"`
			Bars   int    `json:"bars"`
		}
		symbols := store.Symbols()
		out := make([]symbolInfo, len(symbols))
		for i, s := range symbols {
			out[i] = symbolInfo{Symbol: s, Bars: store.Len(s)}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})

	// GET /api/history?symbol=RELIANCE&limit=50
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			writeError(w, http.StatusBadRequest, "missing symbol")
			return
		}
		bars := store.Snapshot(symbol)
		if bars == nil {
			writeError(w, http.StatusNotFound, "unknown symbol: "+symbol)
			return
		}
		if limStr := r.URL.Query().Get("limit"); limStr != "" {
			lim, err := strconv.Atoi(limStr)
			if err != nil || lim < 1 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			if lim < len(bars) {
				bars = bars[len(bars)-lim:]
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bars)
	})
}

// Server wraps the advisor HTTP API.
type Server struct {
	srv *http.Server
}

// NewServer builds the API server on addr.
func NewServer(addr string, svc *service.Service, store *history.Store) *Server {
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc, store)
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// Start runs the server, blocking until it stops.
func (s *Server) Start() error {
	slog.Info("api server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
