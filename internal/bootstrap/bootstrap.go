package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/config"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/filing"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/usecase"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/export/xlsx"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/queue/nats"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/repository/postgres"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/resilience"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/storage/localfs"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/infrastructure/storage/s3"
)

// Options carries per-service wiring that differs between the API and
// the worker, chiefly where filing metrics are recorded.
type Options struct {
	Logger         *slog.Logger
	FilingObserver usecase.FilingObserver
}

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	UploadUC   ports.DocumentUploader
	HintUC     ports.HintFiler
	TreeUC     ports.FolderTreeService
	RegisterUC ports.TenderRegisterService
	DocsUC     *usecase.DocumentsUseCase
	SettingsUC ports.SettingsService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	settingsRepo := postgres.NewSettingsRepository(db)

	storage, err := newObjectStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSIngestSubject, cfg.NATSHintSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy catalog: %w", err)
	}
	tx := taxonomy.New(catalog)
	classifier := filing.NewClassifier(log, cfg.HintConfidenceThreshold)

	uploadUC := usecase.NewUploadDocumentUseCase(repo, storage, queue, classifier, opts.FilingObserver)
	hintUC := usecase.NewFileByHintUseCase(repo, classifier, opts.FilingObserver, log)
	treeUC := usecase.NewFolderTreeUseCase(settingsRepo, repo, tx)
	registerUC := usecase.NewTenderRegisterUseCase(repo, xlsx.NewRegisterWriter())
	docsUC := usecase.NewDocumentsUseCase(repo, storage)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		UploadUC:   uploadUC,
		HintUC:     hintUC,
		TreeUC:     treeUC,
		RegisterUC: registerUC,
		DocsUC:     docsUC,
		SettingsUC: settingsUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	case "local", "":
		return localfs.New(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
