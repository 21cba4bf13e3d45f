package handler

import (
	"net/http"

	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/meta-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// MetaConnection retorna as rotas do vínculo do usuário com a Meta
func MetaConnection(service connecting.Connector, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta/login/start",
			Method:      http.MethodGet,
			Handler:     MetaLoginStart(service, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			// Sem middleware de role: o redirect do Facebook chega sem token.
			Path:    "/v1/meta/login/callback",
			Method:  http.MethodGet,
			Handler: MetaLoginCallback(service, cfg),
		},
		{
			Path:        "/v1/meta/connect",
			Method:      http.MethodPost,
			Handler:     ConnectMeta(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta/connection",
			Method:      http.MethodGet,
			Handler:     GetMetaConnection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta/connection",
			Method:      http.MethodDelete,
			Handler:     DisconnectMeta(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Sync retorna as rotas de disparo e acompanhamento da sincronização
func Sync(
	runRepo repository.SyncRunRepository,
	logRepo repository.SyncLogRepository,
	syncer syncing.Syncer,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/runs",
			Method:      http.MethodPost,
			Handler:     StartSync(runRepo, logRepo, syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/runs/:id",
			Method:      http.MethodGet,
			Handler:     GetSyncRun(runRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/runs/:id/logs",
			Method:      http.MethodGet,
			Handler:     GetSyncRunLogs(runRepo, logRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
