package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dabotcentral/central/internal/auth/domain"
	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/httpx"
	"github.com/dabotcentral/central/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/dabotcentral/central/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	basePath     string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer

	Authenticator  *service.Authenticator
	OTPService     *service.OTPService
	SessionService *service.SessionService
	APIKeyService  *service.APIKeyService
	TodoService    *service.TodoService
	UserService    *service.UserService

	// TodoWriteRole is the role required for POST /daily-todo. Empty allows
	// any authenticated caller.
	TodoWriteRole domain.Role
}

type RouterConfig struct {
	BasePath     string
	BuildVersion string
	CORS         httpx.CORSConfig
	Store        store.Store
	Logger       *slog.Logger

	// Metrics and Gatherer are optional. Without a Gatherer /metrics is not
	// served.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		basePath:     cfg.BasePath,
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		logger:       cfg.Logger,
		store:        cfg.Store,
		metrics:      cfg.Metrics,
		gatherer:     cfg.Gatherer,
	}

	// CORS runs first so preflight requests never reach logging or auth.
	r.middlewares = []httpx.Middleware{
		httpx.CORS(cfg.CORS),
		slogx.HTTPMiddleware(r.logger),
	}
	if r.metrics != nil {
		r.middlewares = append(r.middlewares, r.metrics.HTTPMiddleware)
	}

	return r
}

// ApplyRoutes registers every route. Services must be set before calling it.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAPIKeys()
	r.registerTodo()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			DabotCentral API
//	@version		0.1.0
//	@description	Email one-time-passcode login, session tokens, admin-issued API keys and the per-user daily todo.
//	@description
//	@description				Every protected endpoint takes "Authorization: Bearer <token>" where the token is either a session token or an API key (prefix sk_dabotcentral_).
//
//	@contact.name				DabotCentral
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token or API key. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h := r.handler
	if h == nil {
		h = httpx.Chain(r.Mux, r.middlewares...)
	}
	h.ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.basePath + path
}

func (r *Router) authn() httpx.Middleware {
	return AuthnMiddleware(r.Authenticator, r.metrics)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		OTPService:     r.OTPService,
		SessionService: r.SessionService,
		Metrics:        r.metrics,
	}

	r.Mux.HandleFunc(r.route(http.MethodPost, "/auth/send-otp"), h.HandleSendOTP)
	r.Mux.HandleFunc(r.route(http.MethodPost, "/auth/verify-otp"), h.HandleVerifyOTP)
	r.Mux.HandleFunc(r.route(http.MethodPost, "/auth/logout"), h.HandleLogout)

	me := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle(r.route(http.MethodGet, "/auth/me"), httpx.Chain(me, r.authn()))
}

func (r *Router) registerAPIKeys() {
	h := &APIKeysHandler{APIKeyService: r.APIKeyService, Metrics: r.metrics}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			RequireRole(domain.RoleAdmin),
		)
	}

	r.Mux.Handle(r.route(http.MethodPost, "/admin/api-keys"), secured(h.HandleCreate))
	r.Mux.Handle(r.route(http.MethodGet, "/admin/api-keys"), secured(h.HandleList))
	r.Mux.Handle(r.route(http.MethodDelete, "/admin/api-keys/{id}"), secured(h.HandleRevoke))
}

func (r *Router) registerTodo() {
	h := &TodoHandler{TodoService: r.TodoService}

	writeMiddlewares := []httpx.Middleware{r.authn()}
	if r.TodoWriteRole != "" {
		writeMiddlewares = append(writeMiddlewares, RequireRole(r.TodoWriteRole))
	}

	r.Mux.Handle(r.route(http.MethodGet, "/daily-todo"), httpx.Chain(http.HandlerFunc(h.HandleGet), r.authn()))
	r.Mux.Handle(r.route(http.MethodPost, "/daily-todo"), httpx.Chain(http.HandlerFunc(h.HandleWrite), writeMiddlewares...))
}

func (r *Router) registerSystem() {
	r.Mux.Handle(r.route(http.MethodGet, "/health"), HealthHandler())

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))

	if r.gatherer != nil {
		r.Mux.Handle("GET /metrics", metrics.Handler(r.gatherer))
	}
}
