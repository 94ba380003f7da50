package main

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/server"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/reporting/domain/service"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/reporting/infrastructure/client"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/reporting/infrastructure/transport"
)

const appID = "reportingservice"

type config struct {
	ServeRESTAddress string        `envconfig:"serve_rest_address" default:":8083"`
	OrderBaseURL     string        `envconfig:"order_base_url" default:"http://localhost:8082/api/v1"`
	CatalogBaseURL   string        `envconfig:"catalog_base_url" default:"http://localhost:8081/api/v1"`
	ClientTimeout    time.Duration `envconfig:"client_timeout" default:"5s"`
	JWTSecret        string        `envconfig:"jwt_secret" default:"dev-secret"`
	TokenTTL         time.Duration `envconfig:"token_ttl" default:"24h"`
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	decimal.MarshalJSONWithoutQuotes = true

	app := &cli.App{
		Name:   appID,
		Usage:  "sales and catalog reporting service",
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

	reports := service.NewReportService(
		client.NewOrderClient(cfg.OrderBaseURL, cfg.ClientTimeout),
		client.NewCatalogClient(cfg.CatalogBaseURL, cfg.ClientTimeout),
	)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	log.WithField("address", cfg.ServeRESTAddress).Info("starting server")
	return server.Serve(cfg.ServeRESTAddress, transport.Router(reports, tokens))
}
