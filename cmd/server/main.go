package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tahmidrayat/dukandost/internal/config"
	inventorystore "github.com/tahmidrayat/dukandost/internal/repository/inventory"
	"github.com/tahmidrayat/dukandost/internal/repository/messages"
	"github.com/tahmidrayat/dukandost/internal/repository/sheets"
	"github.com/tahmidrayat/dukandost/internal/scheduler"
	"github.com/tahmidrayat/dukandost/internal/server/handlers"
	"github.com/tahmidrayat/dukandost/internal/server/router"
	"github.com/tahmidrayat/dukandost/internal/service/extraction"
	inventorysvc "github.com/tahmidrayat/dukandost/internal/service/inventory"
	reportingsvc "github.com/tahmidrayat/dukandost/internal/service/reporting"
	whatsappsvc "github.com/tahmidrayat/dukandost/internal/service/whatsapp"
	"github.com/tahmidrayat/dukandost/internal/vocab"
	"github.com/tahmidrayat/dukandost/pkg/clients/openai"
	whatsappclient "github.com/tahmidrayat/dukandost/pkg/clients/whatsapp"
	"github.com/tahmidrayat/dukandost/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	vocabulary := vocab.Default()
	if cfg.Vocab.Path != "" {
		vocabulary, err = vocab.Load(cfg.Vocab.Path)
		if err != nil {
			baseLogger.Fatal("failed to load vocabulary file", zap.Error(err))
		}
		baseLogger.Info("vocabulary loaded from file", zap.String("path", cfg.Vocab.Path), zap.Int("items", len(vocabulary.Items)))
	}

	var (
		store  inventorystore.Store
		msgLog messages.Log
	)

	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoDB.URI))
		if err != nil {
			baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			baseLogger.Fatal("failed to ping mongodb", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()

		db := mongoClient.Database(cfg.MongoDB.DBName)
		store = inventorystore.NewMongoStore(db)
		msgLog = messages.NewMongoLog(db)
	case config.StoreDriverMemory:
		baseLogger.Warn("memory store selected, inventory resets on restart")
		store = inventorystore.NewMemoryStore()
	}

	seed := inventorystore.DefaultSeed()
	if cfg.Vocab.Path != "" {
		seed = inventorystore.SeedForItems(vocabulary.Canonicals())
	}
	if err := store.Seed(context.Background(), seed); err != nil {
		baseLogger.Fatal("failed to seed inventory", zap.Error(err))
	}

	extractor := extraction.New(vocabulary)
	inventorySvc := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))

	var sheetsRepo sheets.Repository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("ledger sheet export enabled")
	}

	var aiClient openai.Client
	if cfg.OpenAI.APIKey != "" {
		aiClient = openai.NewClient(cfg.OpenAI.APIKey)
		baseLogger.Info("openai transcription client enabled")
	} else {
		baseLogger.Warn("openai api key missing, voice notes and photos will not be transcribed")
	}

	whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(
		cfg.WhatsApp, whatsClient, aiClient, extractor, inventorySvc, msgLog,
		baseLogger.Named("svc.whatsapp"))

	webhookHandler := handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	engine := router.New(webhookHandler, baseLogger.Named("router"))

	reportingSvc := reportingsvc.NewService(inventorySvc, msgLog, sheetsRepo, baseLogger.Named("svc.reporting"))
	sched := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
