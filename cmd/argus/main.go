package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/argus/internal/aggregator"
	"github.com/Decentr-net/argus/internal/collector/webhook"
	"github.com/Decentr-net/argus/internal/health"
	mm "github.com/Decentr-net/argus/internal/middleware"
	"github.com/Decentr-net/argus/internal/middleware/memory"
	mmredis "github.com/Decentr-net/argus/internal/middleware/redis"
	"github.com/Decentr-net/argus/internal/normalizer"
	"github.com/Decentr-net/argus/internal/server"
	"github.com/Decentr-net/argus/internal/service/impl"
	"github.com/Decentr-net/argus/internal/storage/postgres"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections, defaults to a random value"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	Redis         string        `long:"redis" env:"REDIS" description:"redis address, in-memory cache is used when empty"`
	RedisPassword string        `long:"redis.password" env:"REDIS_PASSWORD" description:"redis password"`
	RedisDB       int           `long:"redis.db" env:"REDIS_DB" default:"0" description:"redis database"`
	CacheTTL      time.Duration `long:"cache.ttl" env:"CACHE_TTL" default:"5m" description:"overview cache ttl"`

	Timezone string `long:"timezone" env:"TIMEZONE" default:"America/La_Paz" description:"timezone of calendar windows"`

	CollectorURL        string        `long:"collector.url" env:"COLLECTOR_URL" description:"scraping workflow webhook url"`
	CollectorTimeout    time.Duration `long:"collector.timeout" env:"COLLECTOR_TIMEOUT" default:"30s" description:"timeout of a single webhook request"`
	CollectorMaxRetries int           `long:"collector.max_retries" env:"COLLECTOR_MAX_RETRIES" default:"2" description:"retries of failed webhook requests"`
	CollectorRetryDelay time.Duration `long:"collector.retry_delay" env:"COLLECTOR_RETRY_DELAY" default:"1s" description:"initial delay between retries"`
	CollectorMaxDelay   time.Duration `long:"collector.max_delay" env:"COLLECTOR_MAX_DELAY" default:"10s" description:"maximal delay between retries"`
	CollectorInterval   time.Duration `long:"collector.interval" env:"COLLECTOR_INTERVAL" default:"0" description:"interval of periodic scraping, 0 disables it"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

var dsnPassword = regexp.MustCompile(`password=\S+`) // nolint:gochecknoglobals

const mask = "***"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Fatal("failed to load .env")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Argus"
	parser.LongDescription = "Argus social-media monitoring service"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	logrus.Info("service started")
	logrus.Infof("%+v", maskedOpts())

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
			ServerName:       "argus",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load timezone")
	}

	db := mustGetDB()
	s := postgres.New(db)

	if opts.CollectorURL == "" {
		logrus.Warn("empty collector url, scrape triggers will be rejected")
	}

	c := webhook.New(webhook.Config{
		URL:        opts.CollectorURL,
		Timeout:    opts.CollectorTimeout,
		MaxRetries: opts.CollectorMaxRetries,
		BaseDelay:  opts.CollectorRetryDelay,
		MaxDelay:   opts.CollectorMaxDelay,
		Interval:   opts.CollectorInterval,
	})

	pingers := []health.Pinger{
		health.SubjectPinger("postgres", s.Ping),
		c,
	}

	var cache mm.Storage
	if opts.Redis != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     opts.Redis,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		rs := mmredis.NewStorage(rc)

		cache = rs
		pingers = append(pingers, health.SubjectPinger("redis", rs.Ping))
	} else {
		logrus.Info("empty redis address, using in-memory cache")
		cache = memory.NewStorage()
	}

	srv := impl.New(s, c, normalizer.New(normalizer.NewIDGenerator()), aggregator.New())

	r := chi.NewMux()
	server.SetupRouter(srv, r, server.Config{
		Timeout:  opts.RequestTimeout,
		Cache:    cache,
		CacheTTL: opts.CacheTTL,
		Location: loc,
	})
	r.Get("/health", health.Handler(5*time.Second, pingers...))
	r.Handle("/metrics", promhttp.Handler())

	hs := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	ctx, cancel := context.WithCancel(context.Background())

	gr, _ := errgroup.WithContext(ctx)
	gr.Go(func() error {
		return c.Run(ctx)
	})
	gr.Go(hs.ListenAndServe)
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()

		if err := hs.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("failed to shutdown http server")
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}

// maskedOpts returns opts with secrets hidden.
func maskedOpts() interface{} {
	o := opts

	o.Postgres = maskDSN(o.Postgres)
	if o.RedisPassword != "" {
		o.RedisPassword = mask
	}
	if o.SentryDSN != "" {
		o.SentryDSN = mask
	}

	return o
}

func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}

	return dsnPassword.ReplaceAllString(dsn, "password="+mask)
}
