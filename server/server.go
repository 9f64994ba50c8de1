// Package server is the HTTP layer of the business dashboard: a
// backend-for-frontend that authenticates against the remote Aboki API,
// resolves view state, and serves JSON view models to the web client.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/admin"
	"github.com/Svector-anu/Aboki-Business/internal/config"
	"github.com/Svector-anu/Aboki-Business/sessions"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	api          *abokiapi.Client
	business     *sessions.Manager
	adminSession *sessions.Manager
	console      *admin.Console
}

func New(config config.Config, api *abokiapi.Client, business, adminSession *sessions.Manager, console *admin.Console) (*Server, error) {
	if api == nil {
		return nil, errors.New("[server.New] api client is required")
	}
	if business == nil || adminSession == nil {
		return nil, errors.New("[server.New] session managers are required")
	}
	if console == nil {
		return nil, errors.New("[server.New] admin console is required")
	}

	s := &Server{
		mux:          http.NewServeMux(),
		config:       config,
		api:          api,
		business:     business,
		adminSession: adminSession,
		console:      console,
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
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	displayMethod := method
	if color, ok := methodColors[method]; ok {
		paddedMethod := fmt.Sprintf(" %-7s", method)
		displayMethod = color + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
