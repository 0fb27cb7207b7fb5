package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/argus/internal/storage"
	"github.com/Decentr-net/argus/internal/storage/postgres"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Keywords           string `long:"keywords" env:"KEYWORDS" default:"keywords.json" description:"path to keywords list"`
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}{}

// keyword is an item of the imported list. Active defaults to true.
type keyword struct {
	Word   string `json:"word"`
	Active *bool  `json:"active"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "keywords2db"
	parser.LongDescription = "Monitored keywords to database importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("keywords2db started")
	logrus.Infof("%+v", opts)

	b, err := ioutil.ReadFile(opts.Keywords)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read keywords")
	}

	var kk []keyword
	if err := json.Unmarshal(b, &kk); err != nil {
		logrus.WithError(err).Fatal("failed to unmarshal keywords")
	}

	db := mustGetDB()
	s := postgres.New(db)

	ctx := context.Background()

	existing, err := s.ListKeywords(ctx, &storage.ListKeywordsParams{IncludeInactive: true})
	if err != nil {
		logrus.WithError(err).Fatal("failed to list keywords")
	}

	known := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		known[strings.ToLower(v.Word)] = struct{}{}
	}

	var imported int
	for i, v := range kk {
		word := strings.TrimSpace(v.Word)
		if word == "" {
			logrus.Warnf("skip blank keyword #%d", i)
			continue
		}

		if _, ok := known[strings.ToLower(word)]; ok {
			continue
		}

		active := true
		if v.Active != nil {
			active = *v.Active
		}

		if _, err := s.CreateKeyword(ctx, word, active); err != nil {
			logrus.WithError(err).Fatal("failed to put keyword into db")
		}
		known[strings.ToLower(word)] = struct{}{}

		imported++
		if imported%20 == 0 {
			logrus.Infof("%d of %d keywords imported", imported, len(kk))
		}
	}

	logrus.Infof("done, %d keywords imported", imported)
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

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
