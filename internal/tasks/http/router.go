package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"

	_ "github.com/aussiebroadwan/tasks/api/tasks" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultCORS matches the browser frontends the API was first written for.
var DefaultCORS = httpx.CORSConfig{
	AllowedOrigins: []string{"http://127.0.0.1:5500"},
	AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
	AllowedHeaders: []string{"Content-Type", "Authorization"},
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	TokenService      *service.TokenService
	CredentialService *service.CredentialService
	TaskService       *service.TaskService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cors httpx.CORSConfig,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain. Logging sits outside CORS so preflights
	// show up in the request log too.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tasks API
//	@version		0.1.0
//	@description	Multi-user task list. Register or log in to get a bearer token, then manage your own tasks.
//	@description
//	@description				Tokens are HS256 JWTs valid for one hour. Tasks owned by other users answer 401.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tasks
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT identity token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		CredentialService: r.CredentialService,
		TokenService:      r.TokenService,
	}

	r.Mux.HandleFunc("POST /api/auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /api/auth/login", h.HandleLogin)
	r.Mux.Handle("POST /api/auth/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AccessGuard(r.TokenService),
		),
	)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	// Everything under /api/tasks needs a token.
	guard := httpx.AccessGuard(r.TokenService)
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, guard)
	}

	r.Mux.Handle("GET /api/tasks", secured(h.HandleList))
	r.Mux.Handle("POST /api/tasks", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/tasks/{id}", secured(h.HandleGet))
	r.Mux.Handle("PATCH /api/tasks/{id}/complete", secured(h.HandleComplete))
	r.Mux.Handle("PUT /api/tasks/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/tasks/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	h := &HealthHandler{
		Version: r.buildVersion,
		Started: r.startTime,
		Store:   r.store,
		Tokens:  r.TokenService,
	}

	r.Mux.HandleFunc("GET /livez", h.HandleLive)
	r.Mux.HandleFunc("GET /readyz", h.HandleReady)
}
