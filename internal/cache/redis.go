package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stock-advisor/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const (
	analysisPrefix   = "analysis:"
	predictionPrefix = "prediction:"
)

// RedisConfig configures the Redis result cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // per-entry expiry, e.g. 5m
}

// Redis is a ResultCache backed by Redis string keys with TTL. Results are
// stored as JSON; decimals marshal as strings, so round-tripping preserves
// exact values.
type Redis struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis cache and pings the server.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[cache] connected to redis at %s (ttl=%s)", cfg.Addr, cfg.TTL)
	return &Redis{client: client, ttl: cfg.TTL}, nil
}

func (r *Redis) GetAnalysis(ctx context.Context, key string) (*model.AnalysisResult, bool) {
	data, err := r.client.Get(ctx, analysisPrefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("[cache] get analysis %s: %v", key, err)
		}
		return nil, false
	}
	var res model.AnalysisResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("[cache] decode analysis %s: %v", key, err)
		return nil, false
	}
	return &res, true
}

func (r *Redis) PutAnalysis(ctx context.Context, key string, res model.AnalysisResult) {
	if res.LowConfidence() {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("[cache] encode analysis %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, analysisPrefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("[cache] put analysis %s: %v", key, err)
	}
}

func (r *Redis) GetPrediction(ctx context.Context, key string) (*model.PredictionResult, bool) {
	data, err := r.client.Get(ctx, predictionPrefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("[cache] get prediction %s: %v", key, err)
		}
		return nil, false
	}
	var res model.PredictionResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("[cache] decode prediction %s: %v", key, err)
		return nil, false
	}
	return &res, true
}

func (r *Redis) PutPrediction(ctx context.Context, key string, res model.PredictionResult) {
	if res.LowConfidence() {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("[cache] encode prediction %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, predictionPrefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("[cache] put prediction %s: %v", key, err)
	}
}

func (r *Redis) Close() error { return r.client.Close() }
