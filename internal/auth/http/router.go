package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/metrics"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"

	_ "github.com/aussiebroadwan/tollgate/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux     *http.ServeMux
	handler http.Handler

	issuer       *jwtx.Issuer
	transport    httpx.TokenTransport
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store            store.Store
	SessionService   *service.SessionService
	TwoFactorService *service.TwoFactorService
	UserService      *service.UserService
	PostService      *service.PostService
}

func NewRouter(
	issuer *jwtx.Issuer,
	transport httpx.TokenTransport,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		issuer:       issuer,
		transport:    transport,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	// Metrics wraps the mux directly so the matched pattern is visible to it.
	r.handler = httpx.Chain(r.Mux,
		slogx.HTTPMiddleware(r.logger),
		r.metrics.HTTPMiddleware,
	)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tollgate API
//	@version		0.1.0
//	@description	Session service with HS256 access, refresh and two-factor tokens.
//	@description
//	@description	Expired access tokens are answered with status 498 so clients can refresh and retry once.
//	@description	While a user has an unconfirmed second factor every protected route answers 401 until it is confirmed.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tollgate
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
//	@description				HS256 access token. Format: "Bearer {token}". In cookie mode the token cookie is read instead.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// authn returns the access middleware. gated turns on the two-factor gate.
func (r *Router) authn(gated bool) httpx.Middleware {
	return httpx.AuthnMiddleware(httpx.AuthnConfig{
		Verifier:         r.issuer,
		Users:            r.UserService,
		Transport:        r.transport,
		EnforceTwoFactor: gated,
		Observer:         r.metrics,
	})
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		SessionService: r.SessionService,
		Issuer:         r.issuer,
		Transport:      r.transport,
		Metrics:        r.metrics,
	}

	// POST /api/login - strict, keyed on IP + email to slow credential stuffing
	r.Mux.Handle("POST /api/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /api/refresh - not behind authn, the access token is usually expired here
	r.Mux.Handle("POST /api/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/2fa - authenticated with the gate off, otherwise nobody could pass it
	twoFactor := &TwoFactorHandler{
		TwoFactorService: r.TwoFactorService,
		Metrics:          r.metrics,
	}
	r.Mux.Handle("POST /api/2fa",
		httpx.Chain(twoFactor,
			r.authn(false),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/me",
		httpx.Chain(MeHandler(),
			r.authn(true),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	r.Mux.Handle("GET /api/posts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(true),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	votes := map[string]http.Handler{
		"POST /api/posts/{id}/vote":     http.HandlerFunc(h.HandleVote),
		"POST /api/posts/{id}/upvote":   h.VoteKindHandler(domain.VoteUp),
		"POST /api/posts/{id}/downvote": h.VoteKindHandler(domain.VoteDown),
	}
	for pattern, handler := range votes {
		r.Mux.Handle(pattern,
			httpx.Chain(handler,
				r.authn(true),
				httpx.RateLimitByUser(httpx.ModerateLimit),
			),
		)
	}

	// POST /api/posts/{id}/clear - admin only
	r.Mux.Handle("POST /api/posts/{id}/clear",
		httpx.Chain(http.HandlerFunc(h.HandleClear),
			r.authn(true),
			httpx.RequireRole(jwtx.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.issuer),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
