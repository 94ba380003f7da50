package main

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/service"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/infrastructure/repository"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/infrastructure/transport"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/database"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/server"
)

const appID = "catalogservice"

type config struct {
	ServeRESTAddress string        `envconfig:"serve_rest_address" default:":8081"`
	DatabaseDSN      string        `envconfig:"database_dsn" default:"bookstore:bookstore@tcp(localhost:3306)/catalog?parseTime=true&multiStatements=true"`
	MigrationsDir    string        `envconfig:"migrations_dir" default:"migrations/catalog"`
	JWTSecret        string        `envconfig:"jwt_secret" default:"dev-secret"`
	TokenTTL         time.Duration `envconfig:"token_ttl" default:"24h"`
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	decimal.MarshalJSONWithoutQuotes = true

	app := &cli.App{
		Name:   appID,
		Usage:  "book catalog service",
		Action: runService,
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("service terminated")
	}
}

func runService(_ *cli.Context) error {
	var cfg config
	if err := envconfig.Process(appID, &cfg); err != nil {
		return errors.Wrap(err, "parse environment")
	}

	db, err := database.Connect(cfg.DatabaseDSN, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	defer db.Close()

	categoryRepo := repository.NewCategoryRepository(db)
	books := service.NewBookService(repository.NewBookRepository(db), categoryRepo)
	categories := service.NewCategoryService(categoryRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	log.WithField("address", cfg.ServeRESTAddress).Info("starting server")
	return server.Serve(cfg.ServeRESTAddress, transport.Router(books, categories, tokens))
}
