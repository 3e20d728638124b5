package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/config"
	"github.com/iliyamo/festival-program/internal/database"
	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/handler"
	"github.com/iliyamo/festival-program/internal/logging"
	"github.com/iliyamo/festival-program/internal/middleware"
	"github.com/iliyamo/festival-program/internal/program"
	"github.com/iliyamo/festival-program/internal/queue"
	"github.com/iliyamo/festival-program/internal/refresh"
	"github.com/iliyamo/festival-program/internal/repository"
	"github.com/iliyamo/festival-program/internal/router"
	"github.com/iliyamo/festival-program/internal/watchlist"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// logging is not configured yet; the default zerolog logger is fine
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	fest, err := config.LoadFestival(cfg.FestivalPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.FestivalPath).Msg("load festival config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()

	files := dataset.FileSource{
		FilmsPath:    cfg.FilmsPath,
		SchedulePath: cfg.SchedulePath,
		AliasesPath:  cfg.AliasesPath,
	}
	refresher := &refresh.Refresher{Source: files, Digests: digestStore(rdb)}
	if cfg.AMQPURL != "" {
		refresher.Publisher = queue.NewPublisher(cfg.AMQPURL)
	}

	// without MySQL the program is served straight from the files
	var src dataset.Source = files
	if cfg.DB.Enabled() {
		db := openDB(ctx, cfg.DB)
		defer db.Close()
		films := repository.NewFilmRepo(db)
		sched := repository.NewScheduleRepo(db)
		refresher.Films = films
		refresher.Days = sched
		src = repository.Source{Films: films, Schedule: sched, AliasesPath: cfg.AliasesPath}
		seedDatabase(ctx, films, refresher)
	}

	store := program.NewStore(src, fest)
	if _, err := store.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial program load")
	}

	purge := func(ctx context.Context) (int, error) {
		return middleware.PurgeCache(ctx, rdb, cacheCfg.Prefix)
	}
	if cfg.AMQPURL != "" {
		consumer := queue.NewConsumer(cfg.AMQPURL, func(ctx context.Context, ev queue.ScheduleUpdatedEvent) error {
			if _, err := store.Reload(ctx); err != nil {
				return err
			}
			if _, err := purge(ctx); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			}
			return nil
		})
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("schedule consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, &handler.PublicHandler{Program: store}, middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterWatchlist(e, &handler.WatchlistHandler{
		Lists: watchlist.NewService(watchlistBackend(rdb), cfg.WatchlistTTL),
	})
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterAdmin(e, &handler.AdminHandler{
		Program:    store,
		Refresher:  refresher,
		PurgeCache: purge,
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("festival", fest.Name).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

func openDB(ctx context.Context, c config.DBConfig) *sql.DB {
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := database.Open(openCtx, c)
	if err != nil {
		log.Fatal().Err(err).Str("host", c.Host).Msg("open mysql")
	}
	if err := database.Migrate(openCtx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate mysql")
	}
	return db
}

// seedDatabase imports the files into an empty database.  Stale digests
// are dropped first so the run imports everything.
func seedDatabase(ctx context.Context, films *repository.FilmRepo, r *refresh.Refresher) {
	existing, err := films.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("inspect database")
	}
	if len(existing) > 0 {
		return
	}
	if err := r.Digests.Save(ctx, refresh.Digests{}); err != nil {
		log.Warn().Err(err).Msg("reset refresh digests")
	}
	rep, err := r.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed database")
	}
	log.Info().Str("run_id", rep.RunID).Int("days", len(rep.ChangedDays)).Msg("database seeded")
}

func digestStore(rdb *redis.Client) refresh.KV {
	if rdb == nil {
		return refresh.NewMemoryKV()
	}
	return refresh.NewRedisKV(rdb, "")
}

func watchlistBackend(rdb *redis.Client) watchlist.Backend {
	if rdb == nil {
		log.Warn().Msg("redis unavailable, watchlists are kept in memory")
		return watchlist.NewMemoryBackend()
	}
	return watchlist.NewRedisBackend(rdb)
}
