package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/pkg/httpx"
	"github.com/aussiebroadwan/mutual/pkg/jwtx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
	"github.com/aussiebroadwan/mutual/pkg/slogx"

	_ "github.com/aussiebroadwan/mutual/api/match" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *observability.Metrics

	store           store.Store
	UserService     *service.UserService
	InterestService *service.InterestService
	MatchService    *service.MatchService

	// AllowedOrigins enables CORS for the listed origins. Empty disables it.
	AllowedOrigins []string
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}
}

func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.CORS(r.AllowedOrigins),
	}

	r.registerAccounts()
	r.registerCrushes()
	r.registerMatches()
	r.registerSystem()

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mutual Matching Service API
//	@version		0.1.0
//	@description	Users register, record crushes by name, and see which of their crushes named them back.
//	@description
//	@description				Access tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/mutual
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(http.HandlerFunc(r.dispatch), r.middlewares...).ServeHTTP(w, req)
}

// dispatch serves req from the mux. Requests no route accepts get a JSON
// error body instead of the mux's plain text one.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	h, pattern := r.Mux.Handler(req)
	if pattern != "" {
		r.Mux.ServeHTTP(w, req)
		return
	}

	// The mux's fallback handler only sets headers and a status, so run it
	// against a recorder to learn which of 404 or 405 applies.
	rec := &statusRecorder{header: http.Header{}, status: http.StatusOK}
	h.ServeHTTP(rec, req)

	switch rec.status {
	case http.StatusMethodNotAllowed:
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		matchsdk.ErrMethodNotAllowed.WriteError(w)
	case http.StatusNotFound:
		matchsdk.ErrNotFound.WithMessage("no such route").WriteError(w)
	default:
		r.Mux.ServeHTTP(w, req)
	}
}

type statusRecorder struct {
	header http.Header
	status int
}

func (s *statusRecorder) Header() http.Header         { return s.header }
func (s *statusRecorder) Write(b []byte) (int, error) { return len(b), nil }
func (s *statusRecorder) WriteHeader(code int)        { s.status = code }

// handle registers h under pattern with per-route metrics and the given
// middleware.
func (r *Router) handle(pattern string, h http.Handler, middlewares ...httpx.Middleware) {
	r.Mux.Handle(pattern, r.metrics.Instrument(pattern, httpx.Chain(h, middlewares...)))
}

func (r *Router) registerAccounts() {
	r.handle("POST /api/register", &RegisterHandler{
		UserService: r.UserService,
		Metrics:     r.metrics,
	})
	r.handle("POST /api/login", &LoginHandler{
		UserService: r.UserService,
		Metrics:     r.metrics,
	})

	// Logout works with or without a valid token.
	r.handle("POST /api/logout", &LogoutHandler{},
		httpx.OptionalAuthnMiddleware(r.verifier),
	)
}

func (r *Router) registerCrushes() {
	r.handle("POST /api/crush", &CrushCreateHandler{
		InterestService: r.InterestService,
		Metrics:         r.metrics,
	}, httpx.AuthnMiddleware(r.verifier))

	r.handle("GET /api/crush/{userId}", &CrushListHandler{
		InterestService: r.InterestService,
		UserService:     r.UserService,
	}, httpx.AuthnMiddleware(r.verifier))
}

func (r *Router) registerMatches() {
	r.handle("GET /api/matches/{userId}", &MatchesHandler{
		MatchService: r.MatchService,
		Metrics:      r.metrics,
	}, httpx.AuthnMiddleware(r.verifier))
}

func (r *Router) registerSystem() {
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
}
