package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/directory/api/directory" // Swagger docs
	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/engine"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// DefaultLoginMinDuration is the response time floor for credential checks.
const DefaultLoginMinDuration = 100 * time.Millisecond

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         chi.Router
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store // nil unless the relational backend is in use
	Directory backend.Directory
	Engine    engine.Provider
	Sessions  session.Store
	Admin     *service.AdminService

	LoginMinDuration time.Duration
	APIToken         string
	CORSOrigins      []string
	SecureCookies    bool
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:              chi.NewRouter(),
		buildVersion:     buildVersion,
		startTime:        time.Now(),
		store:            st,
		logger:           logger,
		LoginMinDuration: DefaultLoginMinDuration,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		chimw.Recoverer,
	}

	return r
}

// ApplyRoutes registers every route whose dependencies are configured.
func (r *Router) ApplyRoutes() {
	r.registerSystem()
	if r.Directory != nil {
		r.registerDirectoryAPI()
	}
	if r.Directory != nil && r.Engine != nil {
		r.registerInteraction()
	}
	if r.Directory != nil && r.Admin != nil && r.Sessions != nil {
		r.registerAdmin()
	}

	r.Mux.Handle("/swagger/*", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Directory Service API
//	@version		0.1.0
//	@description	Identity directory backing an external OpenID Connect engine.
//	@description
//	@description				The directory API answers count, find and validate questions for the engine or a peer directory.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/directory
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
//	@description				Static API token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSystem() {
	r.Mux.Get("/livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Get("/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Sessions))
	if r.Directory != nil {
		r.Mux.Get("/healthz", HealthzHandler(r.startTime, r.buildVersion, r.Directory))
	}
}

func (r *Router) registerDirectoryAPI() {
	h := &DirectoryAPIHandler{Directory: r.Directory}

	origins := r.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Mux.Route("/api/v1/directory", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		api.Use(httpx.RequireBearer(r.APIToken))

		api.With(httpx.RateLimitByIP(httpx.PublicLimit)).Get("/count", h.Count)
		api.With(httpx.RateLimitByIP(httpx.LenientLimit)).Get("/find", h.Find)
		api.With(httpx.RateLimitByIP(httpx.LenientLimit)).Get("/find/{id}", h.Find)

		// Credential checks share the interaction login's timing floor.
		api.With(
			httpx.MinDuration(r.LoginMinDuration),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		).Post("/validate", h.Validate)
	})
}

func (r *Router) registerInteraction() {
	h := &InteractionHandler{Engine: r.Engine, Directory: r.Directory}

	r.Mux.Get("/interaction/{uid}", h.Show)

	// POST login - held to the timing floor on every path, strict limit per
	// IP and account.
	r.Mux.With(
		httpx.MinDuration(r.LoginMinDuration),
		httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
	).Post("/interaction/{uid}/login", h.Login)

	r.Mux.Post("/interaction/{uid}/confirm", h.Confirm)
	r.Mux.Get("/interaction/{uid}/abort", h.Abort)
	r.Mux.Get("/error", h.Error)
}

func (r *Router) registerAdmin() {
	auth := &AdminAuth{
		Directory:    r.Directory,
		Sessions:     r.Sessions,
		SecureCookie: r.SecureCookies,
	}
	h := &AdminHandler{Admin: r.Admin}

	r.Mux.Route("/directory", func(c chi.Router) {
		c.Get("/login", auth.LoginForm)
		c.With(
			httpx.MinDuration(r.LoginMinDuration),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		).Post("/login", auth.Login)
		c.Get("/logout", auth.Logout)

		c.Group(func(c chi.Router) {
			c.Use(auth.Require)
			c.Use(httpx.RateLimitBySubject(httpx.LenientLimit))

			c.Get("/", h.Dashboard)
			c.Get("/users", h.Users)
			c.Get("/users/new", h.NewUser)
			c.Post("/users", h.CreateUser)
			c.Get("/users/{id}", h.User)
			c.Get("/users/{id}/edit", h.EditUser)
			c.Post("/users/{id}", h.UpdateUser)
			c.Post("/users/{id}/delete", h.DeleteUser)
			c.Post("/users/{id}/roles/{action:add|remove}", h.UserRoles)
			c.Post("/users/{id}/groups/{action:add|remove}", h.UserGroups)

			c.Get("/roles", h.Roles)
			c.Get("/roles/new", h.NewRole)
			c.Post("/roles", h.CreateRole)
			c.Get("/roles/{id}", h.Role)
			c.Get("/roles/{id}/edit", h.EditRole)
			c.Post("/roles/{id}", h.UpdateRole)
			c.Post("/roles/{id}/delete", h.DeleteRole)
			c.Post("/roles/{id}/users/{action:add|remove}", h.RoleUsers)

			c.Get("/groups", h.Groups)
			c.Get("/groups/new", h.NewGroup)
			c.Post("/groups", h.CreateGroup)
			c.Get("/groups/{id}", h.Group)
			c.Get("/groups/{id}/edit", h.EditGroup)
			c.Post("/groups/{id}", h.UpdateGroup)
			c.Post("/groups/{id}/delete", h.DeleteGroup)
			c.Post("/groups/{id}/users/{action:add|remove}", h.GroupUsers)

			c.Get("/domains", h.Domains)
			c.Post("/domains", h.CreateDomain)
			c.Post("/domains/{id}/delete", h.DeleteDomain)
			c.Get("/audit", h.Audit)
		})
	})
}
