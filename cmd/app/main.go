package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/auditlog"
	"github.com/wichananm65/personas-web/internal/auth"
	"github.com/wichananm65/personas-web/internal/config"
	"github.com/wichananm65/personas-web/internal/logging"
	"github.com/wichananm65/personas-web/internal/persona"
	"github.com/wichananm65/personas-web/internal/rag"
	"github.com/wichananm65/personas-web/internal/web"
)

var (
	addr    string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "personas-web",
	Short: "Web front end for the personnel records service",
	Long: `personas-web serves the personnel records pages: SSO login, persona
create/edit/delete, the audit log and the natural-language query page.

AUTH_URL and API_URL point at the SSO service and the records API.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides PERSONAS_ADDR)")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before reading the environment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := newApp(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	logger.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.String("auth_url", cfg.AuthURL),
		zap.String("api_url", cfg.APIURL),
	)
	return app.Listen(cfg.Addr)
}

func newApp(cfg config.Config, logger *zap.Logger) *fiber.App {
	app := web.New(web.Options{
		Logger:      logger,
		JWTSecret:   cfg.JWTSecret,
		Development: cfg.IsDevelopment(),
		CORSOrigins: cfg.CORSOrigins,
	})

	api := apiclient.New(cfg.APIURL, apiclient.WithLogger(logger))
	sso := auth.NewSSOClient(cfg.AuthURL, nil)

	auth.NewHandler(sso, sso.LoginURL(), logger).RegisterRoutes(app)
	persona.NewHandler(persona.NewService(api), logger).RegisterRoutes(app)
	auditlog.NewHandler(api, logger).RegisterRoutes(app)
	rag.NewHandler(api, logger).RegisterRoutes(app)

	return app
}
