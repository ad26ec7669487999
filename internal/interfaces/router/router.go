package router

import (
	"net/http"

	dashsvc "equitie-backend/internal/application/dashboard"
	docsvc "equitie-backend/internal/application/documents"
	entsvc "equitie-backend/internal/application/entities"
	feesvc "equitie-backend/internal/application/fees"
	projsvc "equitie-backend/internal/application/projects"
	txsvc "equitie-backend/internal/application/transactions"
	"equitie-backend/internal/config"
	"equitie-backend/internal/infrastructure/database"
	"equitie-backend/internal/infrastructure/storage"
	authhandler "equitie-backend/internal/interfaces/handlers/auth"
	dashhandler "equitie-backend/internal/interfaces/handlers/dashboard"
	dochandler "equitie-backend/internal/interfaces/handlers/documents"
	enthandler "equitie-backend/internal/interfaces/handlers/entities"
	feehandler "equitie-backend/internal/interfaces/handlers/fees"
	healthhandler "equitie-backend/internal/interfaces/handlers/health"
	projhandler "equitie-backend/internal/interfaces/handlers/projects"
	txhandler "equitie-backend/internal/interfaces/handlers/transactions"
	"equitie-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func openRedis(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// CreateApp builds the Fiber app. The database and Redis are optional: without
// a database only health and session routes are mounted; without Redis the
// dashboard is computed on every call and traffic stats are not recorded.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               25 * 1024 * 1024,
	})

	rdb, err := openRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Session(cfg.SupabaseJWTSecret))

	store := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseSecretKey)
	storageConfigured := cfg.SupabaseURL != "" && cfg.SupabaseSecretKey != ""
	if !storageConfigured {
		log.Warn().Msg("SUPABASE_URL or SUPABASE_SECRET_KEY not set; document uploads will fail")
	}

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if storageConfigured {
		hh.Storage = store
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	ah := &authhandler.Handlers{}
	app.Get("/api/v1/auth/session", ah.Session)

	var db *gorm.DB
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("no database configured; data routes are not mounted")
		return app, nil, rdb, nil
	}
	db, err = database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	hh.DB = &gormDBPinger{db: db}

	dash := &dashsvc.Service{DB: db, Rdb: rdb, TTL: cfg.DashboardCacheTTL}
	api := app.Group("/api/v1")

	dh := &dashhandler.Handlers{Service: dash}
	api.Get("/dashboard", dh.Stats)

	// Projects
	ph := &projhandler.Handlers{Service: &projsvc.Service{DB: db}, Dashboard: dash}
	api.Get("/projects", ph.List)
	api.Get("/projects/:project_id", ph.Get)
	api.Post("/projects", ph.Save)
	api.Delete("/projects/:project_id", ph.Delete)

	// Entities
	eh := &enthandler.Handlers{Service: &entsvc.Service{DB: db}, Dashboard: dash}
	api.Get("/entities", eh.List)
	api.Get("/entities/:entity_uuid", eh.Get)
	api.Post("/entities", eh.Save)
	api.Delete("/entities/:entity_uuid", eh.Delete)

	// Transactions
	th := &txhandler.Handlers{
		Service: &txsvc.Service{DB: db},
		Submitter: &txsvc.Submitter{
			Store:     &txsvc.GormStore{DB: db},
			Atomicity: txsvc.ParseAtomicity(cfg.FeeAtomicity),
		},
		Dashboard: dash,
	}
	api.Get("/transaction-types", th.TransactionTypes)
	api.Get("/transactions", th.List)
	api.Get("/transactions/export", th.Export)
	api.Post("/transactions/price-per-unit", th.PricePerUnit)
	api.Get("/transactions/:transaction_id", th.Get)
	api.Post("/transactions", th.Submit)
	api.Delete("/transactions/:transaction_id", th.Delete)

	// Fees
	fh := &feehandler.Handlers{Service: &feesvc.Service{DB: db}, Dashboard: dash}
	api.Get("/fee-types", fh.FeeTypes)
	api.Get("/fees", fh.List)
	api.Get("/fees/export", fh.Export)
	api.Post("/fees", fh.Save)
	api.Delete("/fees/:fee_id", fh.Delete)

	// Documents
	docs := &docsvc.Service{DB: db, Storage: store, Bucket: cfg.DocumentsBucket}
	doch := &dochandler.Handlers{Service: docs}
	api.Get("/documents", doch.List)
	api.Post("/documents/upload-url", doch.UploadURL)
	api.Post("/documents", doch.Upload)
	api.Get("/documents/:document_id", doch.Get)
	api.Delete("/documents/:document_id", doch.Delete)

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
