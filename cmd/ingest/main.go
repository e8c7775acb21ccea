package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pump-swap-ingestor/internal/ingestion"
	"pump-swap-ingestor/internal/observability"
	"pump-swap-ingestor/internal/poolcache"
	"pump-swap-ingestor/internal/priceoracle"
	"pump-swap-ingestor/internal/pumpamm"
	"pump-swap-ingestor/internal/solana"
	"pump-swap-ingestor/internal/storage"
	chstore "pump-swap-ingestor/internal/storage/clickhouse"
	"pump-swap-ingestor/internal/storage/migrations"
	pgstore "pump-swap-ingestor/internal/storage/postgres"
	"pump-swap-ingestor/internal/trades"
)

func main() {
	wsEndpoint := flag.String("ws-endpoint", envOr("SOLANA_WS_URL", "wss://api.mainnet-beta.solana.com"), "Solana WebSocket endpoint")
	rpcEndpoint := flag.String("rpc-endpoint", envOr("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"), "Solana RPC HTTP endpoint")
	programID := flag.String("program", pumpamm.ProgramID, "AMM program ID to monitor")
	storeBackend := flag.String("store", "clickhouse", "Trade store backend: clickhouse or postgres")
	clickhouseURL := flag.String("clickhouse-url", envOr("CLICKHOUSE_URL", "clickhouse://default@localhost:9000/pump_swap_data"), "ClickHouse connection URL")
	postgresDSN := flag.String("postgres-dsn", envOr("POSTGRES_DSN", "postgres://postgres@localhost:5432/pump_swap_data"), "PostgreSQL connection string")
	priceEndpoint := flag.String("price-endpoint", priceoracle.DefaultEndpoint, "SOL/USD price endpoint")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	err := run(ctx, logger, runConfig{
		wsEndpoint:    *wsEndpoint,
		rpcEndpoint:   *rpcEndpoint,
		programID:     *programID,
		storeBackend:  *storeBackend,
		clickhouseURL: *clickhouseURL,
		postgresDSN:   *postgresDSN,
		priceEndpoint: *priceEndpoint,
	})

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

type runConfig struct {
	wsEndpoint    string
	rpcEndpoint   string
	programID     string
	storeBackend  string
	clickhouseURL string
	postgresDSN   string
	priceEndpoint string
}

// run wires the pipeline and blocks until both loops finish.
// Store connection, schema check, the initial price fetch and the log
// subscription must all succeed before serving; any failure is fatal.
func run(ctx context.Context, logger *log.Logger, cfg runConfig) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Printf("Connected to %s store, schema ready", cfg.storeBackend)

	oracle := priceoracle.New(priceoracle.Options{
		Endpoint: cfg.priceEndpoint,
		Logger:   logger,
	})
	if err := oracle.Refresh(ctx); err != nil {
		return fmt.Errorf("initial price fetch: %w", err)
	}
	logger.Printf("SOL/USD rate initialized at %.2f", oracle.Current())

	rpc := solana.NewHTTPClient(cfg.rpcEndpoint)
	pools := poolcache.New(rpc, logger)
	assembler := trades.NewAssembler(pools, oracle)

	ws, err := solana.NewWSClient(ctx, cfg.wsEndpoint, nil)
	if err != nil {
		return fmt.Errorf("connect websocket: %w", err)
	}
	defer ws.Close()

	notifs, err := ws.SubscribeLogs(ctx, cfg.programID)
	if err != nil {
		return fmt.Errorf("subscribe logs: %w", err)
	}
	logger.Printf("Listening for trades on %s", cfg.programID)

	subscriber := ingestion.NewSubscriber(ingestion.SubscriberOptions{
		Notifications: notifs,
		Assembler:     assembler,
		Logger:        logger,
	})
	sink := ingestion.NewSink(store, logger)

	pipeline := ingestion.NewPipeline()

	// The oracle loop only stops on cancellation; give it its own context
	// so a natural transport-closed shutdown can still terminate it.
	oracleCtx, stopOracle := context.WithCancel(ctx)
	defer stopOracle()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Println("starting oracle refresh loop")
		oracle.Run(oracleCtx)
	}()

	var sinkWg sync.WaitGroup
	sinkWg.Add(1)
	go func() {
		defer sinkWg.Done()
		logger.Println("starting sink")
		sink.Run(ctx, pipeline)
	}()

	logger.Println("starting subscriber")
	runErr := subscriber.Run(ctx, pipeline)

	// The subscriber closed the pipeline on return; wait for the sink to
	// drain it, then stop the refresh loop.
	sinkWg.Wait()
	stopOracle()
	wg.Wait()

	return runErr
}

// openStore connects the configured backend and ensures the schema exists.
func openStore(ctx context.Context, cfg runConfig) (storage.TradeStore, func(), error) {
	switch cfg.storeBackend {
	case "clickhouse":
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.clickhouseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		return chstore.NewTradeStore(conn), func() { conn.Close() }, nil

	case "postgres":
		pool, err := pgstore.NewPool(ctx, cfg.postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		return pgstore.NewTradeStore(pool), func() { pool.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.storeBackend)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
