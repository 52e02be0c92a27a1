package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-tenant-authz/auth"
	"github.com/jrsteele09/go-tenant-authz/impersonation"
	"github.com/jrsteele09/go-tenant-authz/internal/config"
	"github.com/jrsteele09/go-tenant-authz/plans"
	"github.com/jrsteele09/go-tenant-authz/server"
	"github.com/jrsteele09/go-tenant-authz/tenants"
	"github.com/rs/zerolog"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := newLogger(c)

	planCatalog, err := loadPlanCatalog(c)
	if err != nil {
		return fmt.Errorf("loading plan catalog: %w", err)
	}

	tenantRepo := tenants.NewInMemoryRepo()
	if c.GetEnv() == "DEV" {
		if err := server.SeedDevTenants(tenantRepo, logger); err != nil {
			return fmt.Errorf("seeding dev tenants: %w", err)
		}
	}

	sessionStore := impersonation.NewInMemoryStore(c.GetImpersonationTTL())

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go impersonation.RunSweeper(sweepCtx, sessionStore, c.GetSweepInterval(), logger)

	authn, err := buildAuthenticator(c)
	if err != nil {
		return fmt.Errorf("building authenticator: %w", err)
	}

	srv, err := server.New(c, logger, authn, sessionStore, planCatalog, tenantRepo)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func newLogger(c config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", c.GetAppName()).Logger()
}

func loadPlanCatalog(c config.Config) (*plans.Catalog, error) {
	if path := c.GetPlanCatalogPath(); path != "" {
		return plans.LoadFile(path)
	}
	return plans.DefaultCatalog(), nil
}

// buildAuthenticator assembles the authenticator chain: operator API
// keys first (support tooling), then OIDC when an issuer is configured,
// falling back to platform-issued HS256 tokens.
func buildAuthenticator(c config.Config) (auth.Authenticator, error) {
	var chain auth.Multi

	if hashes := c.GetOperatorKeyHashes(); len(hashes) > 0 {
		chain = append(chain, auth.NewOperatorKeyAuthenticator(hashes))
	}

	if issuer := c.GetOIDCIssuer(); issuer != "" {
		oidcAuthn, err := auth.NewOIDCAuthenticator(context.Background(), issuer, c.GetOIDCClientID())
		if err != nil {
			return nil, err
		}
		chain = append(chain, oidcAuthn)
	} else {
		chain = append(chain, auth.NewJWTAuthenticator(c.GetJWTSecret()))
	}

	return chain, nil
}

func listenAndServe(server *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
