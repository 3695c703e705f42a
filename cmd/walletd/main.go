// Package main runs the light wallet synchronization daemon.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/daemon"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/events"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/metrics"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/pipeline"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/scanner"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/subwallets"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/syncstatus"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/wallet"
)

var config struct {
	NodeAddr       string `long:"node-addr" env:"WALLETD_NODE_ADDR" description:"node host:port" default:"127.0.0.1:11898"`
	WalletFile     string `long:"wallet-file" env:"WALLETD_WALLET_FILE" description:"wallet file path"`
	ViewKey        string `long:"view-key" env:"WALLETD_VIEW_KEY" description:"private view key for a new wallet"`
	SpendKey       string `long:"spend-key" env:"WALLETD_SPEND_KEY" description:"private spend key for a new wallet"`
	ScanHeight     uint64 `long:"scan-height" env:"WALLETD_SCAN_HEIGHT" description:"height to start scanning from"`
	MetricsAddr    string `long:"metrics-addr" env:"WALLETD_METRICS_ADDR" description:"metrics listen addr" default:":8090"`
	ScanCoinbase   bool   `long:"scan-coinbase" env:"WALLETD_SCAN_COINBASE" description:"scan coinbase transactions"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	cfg := wallet.DefaultConfig()
	cfg.ScanCoinbaseTransactions = config.ScanCoinbase
	capability := crypto.NewCapability()

	bus := events.NewBus(logger)

	clientOpts := []daemon.Option{daemon.WithNotifier(wallet.NewDaemonNotifier(bus))}
	if cfg.CustomUserAgent != "" {
		clientOpts = append(clientOpts, daemon.WithUserAgent(cfg.CustomUserAgent))
	}
	client, err := daemon.NewClient(config.NodeAddr, cfg.RequestTimeout, metrics.NewNodeClient(), logger, clientOpts...)
	if err != nil {
		logger.Fatal("Build node client", zap.Error(err))
	}

	container, status, startHeight, startTimestamp := loadOrCreateWallet(logger, capability)

	downloader, err := pipeline.NewDownloader(client, status, startHeight, startTimestamp, pipeline.Config{
		BlocksPerDaemonRequest:      cfg.BlocksPerDaemonRequest,
		BlockStoreMemoryLimit:       cfg.BlockStoreMemoryLimit,
		MaxLastFetchedBlockInterval: cfg.MaxLastFetchedBlockInterval,
		SkipCoinbaseTransactions:    !cfg.ScanCoinbaseTransactions,
	}, metrics.NewBlockPipeline(), wallet.NewPipelineNotifier(bus), logger)
	if err != nil {
		logger.Fatal("Build block pipeline", zap.Error(err))
	}

	scan, err := scanner.New(container, client, capability, metrics.NewScanner(), cfg.ScanCoinbaseTransactions, logger)
	if err != nil {
		logger.Fatal("Build scanner", zap.Error(err))
	}

	opts := []wallet.Option{}
	if config.WalletFile != "" {
		opts = append(opts, wallet.WithFile(config.WalletFile))
	}
	w, err := wallet.New(client, downloader, scan, container, bus, metrics.NewWallet(), cfg, logger, opts...)
	if err != nil {
		logger.Fatal("Build wallet", zap.Error(err))
	}

	go logEvents(logger, w.Events())

	if err := w.Start(ctx); err != nil {
		logger.Fatal("Start wallet", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              config.MetricsAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Fatal("Start metrics server", zap.Error(serveErr))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	w.Stop()
	bus.Close()
}

func loadOrCreateWallet(logger *zap.Logger, capability crypto.Capability) (*subwallets.Container, *syncstatus.Status, uint64, uint64) {
	if config.WalletFile != "" {
		if _, err := os.Stat(config.WalletFile); err == nil {
			container := subwallets.NewContainer(crypto.SecretKey{}, false, capability, logger)
			state, err := wallet.LoadFromFile(config.WalletFile, container)
			if err != nil {
				logger.Fatal("Load wallet file", zap.Error(err))
			}
			logger.Info("Loaded wallet", zap.String("file", config.WalletFile))
			return state.SubWallets, state.Status, state.StartHeight, state.StartTimestamp
		}
	}

	viewKey, spendKey, spendPub := newWalletKeys(logger, capability)
	isView := spendKey.IsZero()

	container := subwallets.NewContainer(viewKey, isView, capability, logger)
	if err := container.AddSubWallet(subwallets.SubWallet{
		PublicSpendKey:  spendPub,
		PrivateSpendKey: spendKey,
		SyncStartHeight: config.ScanHeight,
	}); err != nil {
		logger.Fatal("Add subwallet", zap.Error(err))
	}
	return container, syncstatus.NewAt(config.ScanHeight), config.ScanHeight, 0
}

func newWalletKeys(logger *zap.Logger, capability crypto.Capability) (crypto.SecretKey, crypto.SecretKey, crypto.PublicKey) {
	var viewKey, spendKey crypto.SecretKey
	var spendPub crypto.PublicKey
	var err error

	if config.ViewKey != "" {
		if viewKey, err = crypto.SecretKeyFromString(config.ViewKey); err != nil {
			logger.Fatal("Parse view key", zap.Error(err))
		}
	} else if viewKey, _, err = crypto.GenerateKeys(); err != nil {
		logger.Fatal("Generate view key", zap.Error(err))
	}

	if config.SpendKey != "" {
		if spendKey, err = crypto.SecretKeyFromString(config.SpendKey); err != nil {
			logger.Fatal("Parse spend key", zap.Error(err))
		}
		if spendPub, err = capability.SecretKeyToPublicKey(spendKey); err != nil {
			logger.Fatal("Derive spend public key", zap.Error(err))
		}
	} else if spendKey, spendPub, err = crypto.GenerateKeys(); err != nil {
		logger.Fatal("Generate spend key", zap.Error(err))
	}
	return viewKey, spendKey, spendPub
}

func logEvents(logger *zap.Logger, ch <-chan events.Event) {
	for ev := range ch {
		switch e := ev.(type) {
		case events.IncomingTxEvent:
			logger.Info("Incoming transaction",
				zap.String("hash", e.Transaction.Hash.String()),
				zap.Int64("amount", e.Transaction.TotalAmount()))
		case events.OutgoingTxEvent:
			logger.Info("Outgoing transaction",
				zap.String("hash", e.Transaction.Hash.String()),
				zap.Int64("amount", e.Transaction.TotalAmount()))
		case events.SyncEvent:
			logger.Info("Wallet synced", zap.Uint64("height", e.Height))
		case events.DesyncEvent:
			logger.Info("Wallet desynced",
				zap.Uint64("walletHeight", e.WalletHeight),
				zap.Uint64("networkHeight", e.NetworkHeight))
		case events.DeadNodeEvent:
			logger.Warn("Node appears dead")
		case events.ConnectEvent:
			logger.Info("Node connected")
		case events.DisconnectEvent:
			logger.Warn("Node disconnected")
		}
	}
}
