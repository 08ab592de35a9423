package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/gate"
	"github.com/aussiebroadwan/intake/internal/intake/metrics"
	"github.com/aussiebroadwan/intake/internal/intake/notify"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
	"github.com/aussiebroadwan/intake/pkg/slogx"

	_ "github.com/aussiebroadwan/intake/api/intake" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService   *service.AuthService
	IntakeService *service.IntakeService
	Notifier      notify.WelcomeNotifier
	Metrics       *metrics.Metrics // Optional: /metrics is not served when nil

	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Every request resolves its session once, then passes the gate.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.sessionMiddleware,
		gate.Middleware(hasSession),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerViews()
	r.registerAuth()
	r.registerIntake()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Intake Service API
//	@version		0.1.0
//	@description	Operators record prospective clients into a shared list; each new client receives a welcome email.
//	@description
//	@description	Data endpoints under /api require a signed-in operator session (cookie or bearer token).
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/intake
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						intake_session
//	@description				Session token set by POST /api/auth/signin.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerViews() {
	h := &ViewsHandler{IntakeService: r.IntakeService}

	r.Mux.Handle("GET /{$}", http.HandlerFunc(h.HandleLanding))
	r.Mux.Handle("GET /signin", http.HandlerFunc(h.HandleSignIn))
	r.Mux.Handle("GET /signup", http.HandlerFunc(h.HandleSignUp))
	r.Mux.Handle("GET /dashboard", http.HandlerFunc(h.HandleDashboard))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		IntakeService: r.IntakeService,
		SecureCookies: r.SecureCookies,
	}

	// Credential and email-sending endpoints - strict rate limit by IP
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/signup/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/signout",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			requireSession,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerIntake() {
	h := &ClientsHandler{IntakeService: r.IntakeService, Metrics: r.Metrics}

	r.Mux.Handle("POST /api/clients",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			requireSession,
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/clients",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			requireSession,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/clients/form",
		httpx.Chain(http.HandlerFunc(h.HandleForm),
			requireSession,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)

	sendEmail := &SendEmailHandler{Notifier: r.Notifier, Metrics: r.Metrics}
	r.Mux.Handle("POST /api/send-email",
		httpx.Chain(sendEmail,
			requireSession,
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
