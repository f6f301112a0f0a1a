// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"liftout-matching/internal/common/camunda"
	"liftout-matching/internal/common/config"
	"liftout-matching/internal/common/database"
	"liftout-matching/internal/common/logger"
	"liftout-matching/internal/common/observability"
	"liftout-matching/internal/matching"
	"liftout-matching/internal/stores"

	fot "liftout-matching/internal/workers/matching/find-opportunities-for-team"
	fto "liftout-matching/internal/workers/matching/find-teams-for-opportunity"
	nm "liftout-matching/internal/workers/matching/notify-match"
	ro "liftout-matching/internal/workers/matching/recommend-opportunities"
	rt "liftout-matching/internal/workers/matching/recommend-teams"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	tracing, err := observability.InitTracing(cfg.App.Name, cfg.Tracing.Endpoint)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Build stores and the matching service ---
	cacheTTL := time.Duration(cfg.Matching.CacheTTL) * time.Second

	teamStore := stores.NewTeamStore(pg.DB, esClient.Client, redis.Client, stores.TeamStoreOptions{
		Index:    cfg.Matching.TeamIndex,
		PoolSize: cfg.Matching.PoolSize,
		CacheTTL: cacheTTL,
	}, log)

	opportunityStore := stores.NewOpportunityStore(pg.DB, esClient.Client, redis.Client, stores.OpportunityStoreOptions{
		Index:    cfg.Matching.OpportunityIndex,
		PoolSize: cfg.Matching.PoolSize,
		CacheTTL: cacheTTL,
	}, log)

	matchingService := matching.NewService(teamStore, opportunityStore, log)

	var jobWorkers []*camunda.Worker
	startWorker := func(taskType string, wcfg config.WorkerConfig, handlerFunc camunda.HandlerFunc) {
		w := camunda.NewWorker(zeebeClient, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
			Recorder:      obs,
		}, handlerFunc, zapLog)
		jobWorkers = append(jobWorkers, w)
	}

	// --- Register Matching Workers (5) ---
	if cfg.Workers[fto.TaskType].Enabled {
		handler := fto.NewHandler(
			&fto.Config{
				Timeout: time.Duration(cfg.Workers[fto.TaskType].Timeout) * time.Millisecond,
			},
			matchingService, log,
		)
		startWorker(fto.TaskType, cfg.Workers[fto.TaskType], handler.Handle)
	}

	if cfg.Workers[fot.TaskType].Enabled {
		handler := fot.NewHandler(
			&fot.Config{
				Timeout: time.Duration(cfg.Workers[fot.TaskType].Timeout) * time.Millisecond,
			},
			matchingService, log,
		)
		startWorker(fot.TaskType, cfg.Workers[fot.TaskType], handler.Handle)
	}

	if cfg.Workers[rt.TaskType].Enabled {
		handler := rt.NewHandler(
			&rt.Config{
				Timeout:      time.Duration(cfg.Workers[rt.TaskType].Timeout) * time.Millisecond,
				DefaultLimit: cfg.Matching.DefaultMaxResults,
			},
			matchingService, log,
		)
		startWorker(rt.TaskType, cfg.Workers[rt.TaskType], handler.Handle)
	}

	if cfg.Workers[ro.TaskType].Enabled {
		handler := ro.NewHandler(
			&ro.Config{
				Timeout:      time.Duration(cfg.Workers[ro.TaskType].Timeout) * time.Millisecond,
				DefaultLimit: cfg.Matching.DefaultMaxResults,
			},
			matchingService, log,
		)
		startWorker(ro.TaskType, cfg.Workers[ro.TaskType], handler.Handle)
	}

	if cfg.Workers[nm.TaskType].Enabled {
		handler, err := nm.NewHandler(
			&nm.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[nm.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create notify-match handler", zap.Error(err))
		}
		startWorker(nm.TaskType, cfg.Workers[nm.TaskType], handler.Handle)
	}

	zapLog.Info("All matching workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range jobWorkers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
