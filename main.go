package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"luxeStore/config"
	"luxeStore/handlers"
	"luxeStore/repository"
	"luxeStore/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "luxestore"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath, logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Luxe fashion store backend",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(configPath, logLevel)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and load the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(configPath, logLevel)
			if err != nil {
				return err
			}
			return seed(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func setup(configPath, logLevel string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := initLogging(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initLogging(lc config.LogConfig) error {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logrus.SetLevel(level)
	if strings.EqualFold(lc.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func seed(cfg *config.Config) error {
	db, err := repository.OpenDB(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repository.SeedSampleCatalog(db); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logrus.Infof("catalog seeded into %s", cfg.Database.Driver)
	return nil
}

// backends holds the connections serve opened, for shutdown.
type backends struct {
	db        *sqlx.DB
	rdb       *redis.Client
	publisher repository.OrderPublisher
}

func (b *backends) Close() {
	if b.publisher != nil {
		b.publisher.Close()
	}
	if b.rdb != nil {
		b.rdb.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}

func (b *backends) sqlDB(cfg *config.Config) (*sqlx.DB, error) {
	if b.db == nil {
		db, err := repository.OpenDB(cfg.Database.Driver, cfg.DSN())
		if err != nil {
			return nil, err
		}
		logrus.Printf("db connected")
		b.db = db
	}
	return b.db, nil
}

func (b *backends) catalog(cfg *config.Config) (repository.ProductRepository, error) {
	if cfg.Catalog.Source == config.CatalogStatic {
		return repository.NewProductRepository(), nil
	}
	db, err := b.sqlDB(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewProductSqlRepository(db)
}

func (b *backends) stateRepo(cfg *config.Config) (repository.StateRepository, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		b.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
		defer cncl()
		if status := b.rdb.Ping(ctx); status.Err() != nil {
			return nil, fmt.Errorf("redis is not working: %w", status.Err())
		}
		logrus.Printf("redis connected")
		return repository.NewRedisStateRepository(b.rdb, context.Background(), cfg.Storage.TTL)
	case config.StorageSql:
		db, err := b.sqlDB(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewStateSqlRepository(db)
	default:
		return repository.NewFileStateRepository(cfg.Storage.Dir)
	}
}

func (b *backends) orderPublisher(cfg *config.Config) (repository.OrderPublisher, error) {
	if len(cfg.Events.Brokers) == 0 {
		return repository.NopOrderPublisher{}, nil
	}
	pub, err := repository.NewKafkaOrderPublisher(cfg.Events.Brokers, cfg.Events.Topic)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	b.publisher = pub
	logrus.Printf("publishing orders to %s", cfg.Events.Topic)
	return pub, nil
}

func serve(cfg *config.Config) error {
	b := &backends{}
	defer b.Close()

	pR, err := b.catalog(cfg)
	if err != nil {
		return err
	}
	sR, err := b.stateRepo(cfg)
	if err != nil {
		return err
	}
	pub, err := b.orderPublisher(cfg)
	if err != nil {
		return err
	}

	hp := handlers.HandlerParams{
		Sessions:    services.NewSessionService(sR, cfg.Storage.StateName),
		UsrService:  services.NewUserService(cfg.Delays.Login),
		PrdService:  services.NewProductService(pR),
		CrtService:  services.NewCartService(pR, cfg.Delays.AddToCart),
		WshService:  services.NewWishlistService(pR),
		CatsService: services.NewCategoryService(pR),
		ChkService:  services.NewCheckoutService(cfg.Delays.Payment, pub),
		OrdService:  services.NewOrderService(),
		Metrics:     handlers.NewMetrics(),
		CookieTTL:   cfg.Server.CookieTTL,
	}
	ha := handlers.NewHandler(hp)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.NewRouter(ha),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hp.Sessions.Sweep(ctx, cfg.Server.CookieTTL)
	errCh := make(chan error, 1)
	go func() {
		logrus.Printf("starting server on %s...", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logrus.Info("shutting down")
	// let in-flight payments finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Delays.Payment+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
