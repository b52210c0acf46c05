package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftline/shiftline-backend/api/controllers"
	"github.com/shiftline/shiftline-backend/api/middleware"
	"github.com/shiftline/shiftline-backend/internal/auth"
	"github.com/shiftline/shiftline-backend/internal/notifications"
	"github.com/shiftline/shiftline-backend/internal/shifts"
	"github.com/shiftline/shiftline-backend/internal/swaps"
	"github.com/shiftline/shiftline-backend/pkg/auth/session"
	"github.com/shiftline/shiftline-backend/pkg/config"
	"github.com/shiftline/shiftline-backend/pkg/db"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/shiftline/shiftline-backend/pkg/logger"
	"github.com/shiftline/shiftline-backend/pkg/redis"
)

type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Sessions      session.AccessSessionChecker
	Memberships   middleware.MembershipChecker
	Auth          auth.Service
	Swaps         swaps.Service
	Shifts        shifts.Repository
	Notifications notifications.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", controllers.CreateSwap(d.Swaps, logg))
			r.Get("/", controllers.ListSwaps(d.Swaps, logg))
			r.Get("/incoming", controllers.ListIncomingSwaps(d.Swaps, logg))
			r.Get("/outgoing", controllers.ListOutgoingSwaps(d.Swaps, logg))
			r.Get("/pending-approval", controllers.ListPendingApprovalSwaps(d.Swaps, logg))
			r.Get("/{swapId}", controllers.GetSwap(d.Swaps, logg))
			r.Post("/{swapId}/respond", controllers.RespondSwap(d.Swaps, logg))
			r.Post("/{swapId}/decision", controllers.DecideSwap(d.Swaps, logg))
		})

		r.Route("/shifts", func(r chi.Router) {
			// Any member may read the schedule; the middleware rejects
			// tokens whose membership was revoked after issuance.
			r.Use(middleware.RequireRestaurantRoles(d.Memberships, logg,
				enums.MemberRoleStaff, enums.MemberRoleManager, enums.MemberRoleAdmin, enums.MemberRoleOwner))
			r.Get("/", controllers.ListShifts(d.Shifts, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(d.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(d.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(d.Notifications, logg))
		})
	})

	return r
}
