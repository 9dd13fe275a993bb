package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/hoopboard/draftboard/external/barttorvik"
	"github.com/hoopboard/draftboard/external/firecrawl"
	"github.com/hoopboard/draftboard/external/jobqueue"
	"github.com/hoopboard/draftboard/external/workerskv"
	"github.com/hoopboard/draftboard/internal/config"
	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/infrastructure/repository/memory"
	"github.com/hoopboard/draftboard/internal/infrastructure/repository/postgres"
	"github.com/hoopboard/draftboard/internal/interfaces/httpapi"
	"github.com/hoopboard/draftboard/internal/match"
	"github.com/hoopboard/draftboard/internal/platform/logging"
	"github.com/hoopboard/draftboard/internal/platform/resilience"
	"github.com/hoopboard/draftboard/internal/usecase"
)

// App holds the wired service graph. Both the API server and the one-shot
// refresh command build the same graph.
type App struct {
	Config config.Config
	Logger *logging.Logger

	DB   *sqlx.DB
	Repo prospect.Repository

	BoardService   *usecase.BoardService
	RefreshService *usecase.RefreshService
	Dispatcher     httpapi.JobDispatcher
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var db *sqlx.DB
	var repo prospect.Repository
	if cfg.DBURL != "" {
		conn, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = conn
		repo = postgres.NewBoardRepository(conn)
		logger.Info("snapshot store ready", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		repo = memory.NewBoardRepository()
		logger.Info("snapshot store ready", "backend", "memory")
	}

	scraper := firecrawl.NewClient(firecrawl.ClientConfig{
		BaseURL:    cfg.FirecrawlBaseURL,
		APIKey:     cfg.FirecrawlAPIKey,
		Timeout:    cfg.FirecrawlTimeout,
		MaxRetries: cfg.FirecrawlMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FirecrawlCircuitEnabled,
			FailureThreshold: cfg.FirecrawlCircuitFailureCount,
			OpenTimeout:      cfg.FirecrawlCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FirecrawlCircuitHalfOpenMaxReq,
		},
	})

	statsProvider := barttorvik.NewClient(barttorvik.ClientConfig{
		BaseURL:    cfg.BarttorvikBaseURL,
		Timeout:    cfg.BarttorvikTimeout,
		MaxRetries: cfg.BarttorvikMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BarttorvikCircuitEnabled,
			FailureThreshold: cfg.BarttorvikCircuitFailureCount,
			OpenTimeout:      cfg.BarttorvikCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BarttorvikCircuitHalfOpenMaxReq,
		},
	})

	var dispatcher httpapi.JobDispatcher
	if cfg.QStashEnabled {
		dispatcher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	var uploader usecase.SnapshotUploader
	if cfg.KVUploadEnabled {
		uploader = workerskv.NewClient(workerskv.ClientConfig{
			BaseURL:     cfg.KVBaseURL,
			AccountID:   cfg.KVAccountID,
			NamespaceID: cfg.KVNamespaceID,
			APIToken:    cfg.KVAPIToken,
			Timeout:     cfg.KVTimeout,
			Logger:      logger,
		})
	}

	images := usecase.DefaultImageConfig()
	if cfg.PlayerImageBasePath != "" {
		images.BasePath = cfg.PlayerImageBasePath
	}
	merger := usecase.NewMergeService(match.MatcherConfig{}, images, logger)

	refreshSvc := usecase.NewRefreshService(
		usecase.RefreshConfig{
			TankathonURL:          cfg.TankathonURL,
			NBADraftNetURL:        cfg.NBADraftNetURL,
			ESPNURL:               cfg.ESPNURL,
			DraftRoomURL:          cfg.DraftRoomURL,
			PlayerPageBaseURL:     cfg.PlayerPageBaseURL,
			SeasonYear:            cfg.SeasonYear,
			SnapshotKey:           cfg.KVSnapshotKey,
			SnapshotRetention:     cfg.SnapshotRetention,
			PlayerPageConcurrency: cfg.PlayerPageConcurrency,
		},
		scraper,
		statsProvider,
		merger,
		repo,
		uploader,
		logger,
	)

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Repo:           repo,
		BoardService:   usecase.NewBoardService(repo, logger),
		RefreshService: refreshSvc,
		Dispatcher:     dispatcher,
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func (a *App) HTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(a.BoardService, a.RefreshService, a.Dispatcher, a.Logger)
	router := httpapi.NewRouter(
		handler,
		a.Logger,
		a.Config.SwaggerEnabled,
		a.Config.CORSAllowedOrigins,
		a.Config.InternalJobToken,
	)

	server := &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
