package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"pos-terminal/internal/backup"
	"pos-terminal/internal/config"
	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/gateway"
	"pos-terminal/internal/handlers"
	"pos-terminal/internal/health"
	h "pos-terminal/internal/http"
	"pos-terminal/internal/kv"
	"pos-terminal/internal/middleware"
	"pos-terminal/internal/monitoring"
	"pos-terminal/internal/repositories"
	"pos-terminal/internal/settings"
	"pos-terminal/internal/store"
)

// openKV picks the cache backend: Redis when configured and reachable,
// otherwise the file store under the data directory.
func openKV(cfg *config.Config) kv.KV {
	if cfg.Redis.Enabled {
		kvs, err := kv.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
		if err == nil {
			log.Printf("[Terminal] cache backed by Redis at %s", cfg.Redis.Addr)
			return kvs
		}
		log.Printf("[Terminal] Redis unavailable (%v), falling back to file store", err)
	}

	kvs, err := kv.NewFileStore(cfg.Terminal.DataDir)
	if err != nil {
		log.Fatalf("opening file store: %v", err)
	}
	log.Printf("[Terminal] cache backed by files under %s", cfg.Terminal.DataDir)
	return kvs
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	kvs := openKV(cfg)
	defer kvs.Close()

	st := store.New(kvs)
	if err := st.Init(ctx); err != nil {
		log.Fatalf("initialising store: %v", err)
	}

	set := settings.New(kvs, cfg.Terminal.APIBaseURL)
	if err := set.Load(ctx); err != nil {
		log.Fatalf("loading settings: %v", err)
	}

	policy := connectivity.New(set)
	gw := gateway.New(set)

	customerRepo := repositories.NewCustomerRepository(gw, st, policy)
	txRepo := repositories.NewTransactionRepository(gw, st, policy, customerRepo)

	hub := monitoring.NewHub()
	go hub.Run()

	checker := health.NewChecker(policy, st)

	var backupSvc *backup.Service
	if cfg.Backup.Enabled {
		backupSvc = backup.NewService(st, backup.Config{
			Endpoint:  cfg.Backup.Endpoint,
			Region:    cfg.Backup.Region,
			Bucket:    cfg.Backup.Bucket,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
		})
		log.Printf("[Terminal] snapshot backup enabled (bucket %s)", cfg.Backup.Bucket)
	}

	router := h.NewRouter(
		handlers.NewCustomerHandler(customerRepo),
		handlers.NewTransactionHandler(txRepo, customerRepo, hub),
		handlers.NewStatusHandler(policy, gw, set, hub),
		handlers.NewHealthHandler(checker),
		handlers.NewBackupHandler(backupSvc),
		hub,
	)

	handler := middleware.NewCORS(cfg)(router)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	log.Printf("[Terminal] UI API listening on %s (remote API default %s)", addr, cfg.Terminal.APIBaseURL)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
