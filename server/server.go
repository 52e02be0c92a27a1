package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tenant-authz/auth"
	"github.com/jrsteele09/go-tenant-authz/impersonation"
	"github.com/jrsteele09/go-tenant-authz/internal/config"
	"github.com/jrsteele09/go-tenant-authz/plans"
	"github.com/jrsteele09/go-tenant-authz/tenants"
	"github.com/rs/zerolog"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	log    zerolog.Logger

	authn          auth.Authenticator
	impersonations impersonation.Store
	planCatalog    *plans.Catalog
	tenantRepo     tenants.Repo
}

func New(
	config config.Config,
	log zerolog.Logger,
	authn auth.Authenticator,
	impersonations impersonation.Store,
	planCatalog *plans.Catalog,
	tenantRepo tenants.Repo,
) (*Server, error) {
	if authn == nil {
		return nil, fmt.Errorf("[Server New] authenticator is required")
	}
	if impersonations == nil {
		return nil, fmt.Errorf("[Server New] impersonation store is required")
	}
	if planCatalog == nil {
		return nil, fmt.Errorf("[Server New] plan catalog is required")
	}
	if tenantRepo == nil {
		return nil, fmt.Errorf("[Server New] tenant repo is required")
	}

	s := &Server{
		mux:            http.NewServeMux(),
		config:         config,
		log:            log,
		authn:          authn,
		impersonations: impersonations,
		planCatalog:    planCatalog,
		tenantRepo:     tenantRepo,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.log.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
