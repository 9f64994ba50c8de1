package server

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/admin"
	"github.com/Svector-anu/Aboki-Business/internal/config"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/sessions"
)

// adminAuthAPI adapts the API client for the admin session manager: logins go
// through the admin auth endpoint. The remote API exposes no admin profile
// endpoint, so CheckAuth is unsupported for this scope; the admin session is
// validated by the admin endpoints themselves.
type adminAuthAPI struct {
	*abokiapi.Client
}

func (a adminAuthAPI) Login(ctx context.Context, email, password string) (abokiapi.LoginResult, error) {
	return a.Client.AdminLogin(ctx, email, password)
}

func (a adminAuthAPI) Profile(ctx context.Context, token string) (abokiapi.UserRecord, error) {
	return abokiapi.UserRecord{}, apperrors.Wrapf(apperrors.ErrUnsupported, "admin profile refresh")
}

// Bootstrap wires the API client, session stores, and admin console from
// config and returns a ready Server.
func Bootstrap(cfg config.Config) (*Server, error) {
	api, err := abokiapi.New(cfg.GetAPIBaseURL(), abokiapi.WithLogger(log.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] creating API client")
	}

	businessStore, err := sessions.NewFileStore(cfg.GetDataFolder(), sessions.ScopeBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] business session store")
	}
	adminStore, err := sessions.NewFileStore(cfg.GetDataFolder(), sessions.ScopeAdmin)
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] admin session store")
	}

	business, err := sessions.NewManager(businessStore, api, sessions.WithLogger(log.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] business session manager")
	}
	adminSession, err := sessions.NewManager(adminStore, adminAuthAPI{api}, sessions.WithLogger(log.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] admin session manager")
	}

	console, err := admin.NewConsole(api, adminSession, admin.WithLogger(log.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "[server.Bootstrap] admin console")
	}

	return New(cfg, api, business, adminSession, console)
}

// Console exposes the admin console so the main can run its auto-refresh
// loop.
func (s *Server) Console() *admin.Console {
	return s.console
}
