package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TioMeko/Property-Management/internal/auth"
	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/service"
	"github.com/TioMeko/Property-Management/pkg/health"
	"github.com/TioMeko/Property-Management/pkg/middleware"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth        *service.AuthService
	Tenant      *service.TenantService
	Lease       *service.LeaseService
	Payment     *service.PaymentService
	Invoice     *service.InvoiceService
	Maintenance *service.MaintenanceService
	Notice      *service.NoticeService
	Onboarding  *service.OnboardingService
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	svcs Services,
	tokens *auth.TokenManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("property"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Auth endpoints (public)
	authHandler := NewAuthHandler(svcs.Auth, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Token verifier bridging the gate to the token manager.
	verify := func(token string) (*middleware.Claims, error) {
		claims, err := tokens.Verify(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Role:   claims.Role,
			Name:   claims.Name,
		}, nil
	}

	// Identity lookup re-resolving the verified user against the store, so a
	// deleted account's still-valid token stops working.
	lookup := func(ctx context.Context, userID string) (*middleware.Identity, error) {
		user, err := svcs.Auth.LookupIdentity(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &middleware.Identity{
			ID:    user.ID,
			Role:  user.Role,
			Name:  user.Name,
			Email: user.Email,
		}, nil
	}

	authenticate := middleware.Authenticate(verify, lookup, logger)

	tenantHandler := NewTenantHandler(svcs.Tenant, svcs.Lease, logger)
	leaseHandler := NewLeaseHandler(svcs.Lease, logger)
	paymentHandler := NewPaymentHandler(svcs.Payment, logger)
	invoiceHandler := NewInvoiceHandler(svcs.Invoice, logger)
	maintenanceHandler := NewMaintenanceHandler(svcs.Maintenance, logger)
	noticeHandler := NewNoticeHandler(svcs.Notice, logger)
	onboardingHandler := NewOnboardingHandler(svcs.Onboarding, logger)

	operatorOnly := middleware.RequireRole(domain.RoleLandlord, domain.RoleAdmin)

	// Tenant dashboard (tenant role only)
	r.Route("/api/v1/tenant", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(domain.RoleTenant))

		r.Get("/summary", tenantHandler.Summary)
		r.Get("/lease", tenantHandler.Lease)
	})

	// Lease management (operators only)
	r.Route("/api/v1/leases", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)
		r.Use(operatorOnly)

		r.Post("/", leaseHandler.Create)
		r.Get("/tenant/{tenantId}", leaseHandler.ListByTenant)
		r.Patch("/{id}/status", leaseHandler.UpdateStatus)
	})

	// Payments (reads for everyone authenticated, writes for operators)
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)

		r.Get("/{id}", paymentHandler.Get)
		r.Get("/tenant/{tenantId}", paymentHandler.ListByTenant)

		r.Group(func(r chi.Router) {
			r.Use(operatorOnly)

			r.Post("/", paymentHandler.Create)
			r.Patch("/{id}/status", paymentHandler.UpdateStatus)
		})
	})

	// Invoices (reads for everyone authenticated, writes for operators)
	r.Route("/api/v1/invoices", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)

		r.Get("/", invoiceHandler.List)
		r.Get("/{id}", invoiceHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(operatorOnly)

			r.Post("/", invoiceHandler.Create)
			r.Patch("/{id}/status", invoiceHandler.UpdateStatus)
		})
	})

	// Maintenance tickets
	r.Route("/api/v1/maintenance", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)

		r.Get("/", maintenanceHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleTenant))

			r.Post("/", maintenanceHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(operatorOnly)

			r.Patch("/{id}/status", maintenanceHandler.UpdateStatus)
		})
	})

	// Notices
	r.Route("/api/v1/notices", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)

		r.Get("/", noticeHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(operatorOnly)

			r.Post("/", noticeHandler.Create)
			r.Delete("/{id}", noticeHandler.Deactivate)
		})
	})

	// Onboarding drafts (any authenticated user)
	r.Route("/api/v1/onboarding", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(authenticate)

		r.Get("/", onboardingHandler.Get)
		r.Put("/", onboardingHandler.SaveStep)
	})

	return r
}
