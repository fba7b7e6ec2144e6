package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Djberg2/GrndWrkv0/internal/blob"
	"github.com/Djberg2/GrndWrkv0/internal/config"
	"github.com/Djberg2/GrndWrkv0/internal/db"
	"github.com/Djberg2/GrndWrkv0/internal/geocode"
	httpapi "github.com/Djberg2/GrndWrkv0/internal/http"
	"github.com/Djberg2/GrndWrkv0/internal/http/handlers"
	"github.com/Djberg2/GrndWrkv0/internal/jobs"
	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/overlay"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
	"github.com/Djberg2/GrndWrkv0/internal/service"
	"github.com/Djberg2/GrndWrkv0/internal/settings"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return eris.Wrap(err, "connect db")
	}
	defer store.Close()

	if !skipMigrate {
		if err := store.Migrate(ctx, logger); err != nil {
			return eris.Wrap(err, "migrate")
		}
	}

	m := metrics.New()
	ov, err := newOverlay(ctx)
	if err != nil {
		return err
	}
	if c, ok := ov.(io.Closer); ok {
		defer c.Close()
	}
	photos, err := newBlob(ctx)
	if err != nil {
		return err
	}

	var geocoder geocode.Geocoder
	if cfg.GeocoderURL == "" {
		geocoder = geocode.MockGeocoder{CenterLat: 39.7817, CenterLon: -89.6501, SpreadDeg: 0.5}
		logger.Info().Msg("using mock geocoder")
	} else {
		geocoder = geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderInterval)
	}

	loc := cfg.Location()
	lifecycle := &service.LifecycleService{Store: store, Overlay: ov, Metrics: m, Logger: logger}
	h := &handlers.Handler{
		Store:     store,
		Settings:  &settings.Service{Store: store, Logger: logger},
		Lifecycle: lifecycle,
		Leads:     &service.LeadService{Store: store, Lifecycle: lifecycle, Logger: logger},
		Scheduler: &service.ScheduleService{Store: store, Metrics: m, Logger: logger, Location: loc, PhoneRegion: cfg.PhoneRegion},
		Blob:      photos,
		Geocoder:  geocoder,
		Estimator: pricing.NewEstimator(cfg.EstimateVariance, cfg.DefaultSquareFootage),
		Metrics:   m,
		Validator: validator.New(),
		Logger:    logger,
		Location:  loc,
	}

	cron := jobs.NewCronManager(ov, m, logger)
	if err := cron.SetupJobs(cfg.OverlayAuditSchedule); err != nil {
		return eris.Wrapf(err, "overlay audit schedule %q", cfg.OverlayAuditSchedule)
	}
	cron.Start()
	defer cron.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.Router(cfg, h),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return eris.Wrap(err, "http server")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
	return nil
}

func newOverlay(ctx context.Context) (overlay.Overlay, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("using in-memory lead overlay")
		return overlay.NewMemory(), nil
	}
	return overlay.NewRedis(ctx, cfg.RedisURL)
}

func newBlob(ctx context.Context) (blob.Storage, error) {
	if !cfg.UseS3() {
		logger.Info().Msg("using in-memory photo storage")
		return blob.NewMemory("http://localhost:" + cfg.Port + "/photos"), nil
	}
	return blob.NewS3(ctx, s3Config(cfg))
}

func s3Config(c config.Config) blob.S3Config {
	return blob.S3Config{
		Bucket:          c.S3Bucket,
		Region:          c.S3Region,
		Endpoint:        c.S3Endpoint,
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		PublicURL:       c.S3PublicURL,
	}
}
