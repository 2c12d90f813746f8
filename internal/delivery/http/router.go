package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gymadmin/internal/delivery/http/controllers"
	"gymadmin/internal/delivery/http/middleware"
	"gymadmin/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Class   *controllers.ClassController
	Program *controllers.ProgramController
	Plan    *controllers.PlanController
	Member  *controllers.MemberController
	Payment *controllers.PaymentController
	CheckIn *controllers.CheckInController
}

// NewRouter initializes the HTTP router with all application routes. Every
// route except auth and swagger requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Classes and the recurring program
	mux.HandleFunc("POST /classes", auth(c.Class.Create))
	mux.HandleFunc("GET /classes", auth(c.Class.List))
	mux.HandleFunc("GET /classes/{classID}", auth(c.Class.Get))
	mux.HandleFunc("PUT /classes/{classID}", auth(c.Class.Update))
	mux.HandleFunc("DELETE /classes/{classID}", admin(c.Class.Delete))
	mux.HandleFunc("POST /classes/{classID}/program", auth(c.Program.GenerateProgram))
	mux.HandleFunc("POST /classes/{classID}/program/delete", auth(c.Program.DeleteProgram))

	// Sessions
	mux.HandleFunc("GET /sessions", auth(c.Program.ListSessions))
	mux.HandleFunc("POST /sessions", auth(c.Program.CreateSession))
	mux.HandleFunc("PATCH /sessions/{sessionID}", auth(c.Program.UpdateSession))
	mux.HandleFunc("DELETE /sessions/{sessionID}", auth(c.Program.DeleteSession))

	// Plans
	mux.HandleFunc("POST /plans", auth(c.Plan.Create))
	mux.HandleFunc("GET /plans", auth(c.Plan.List))
	mux.HandleFunc("PUT /plans/{planID}", auth(c.Plan.Update))
	mux.HandleFunc("DELETE /plans/{planID}", admin(c.Plan.Delete))

	// Members
	mux.HandleFunc("POST /members", auth(c.Member.Create))
	mux.HandleFunc("GET /members", auth(c.Member.List))
	mux.HandleFunc("GET /members/{memberID}", auth(c.Member.Get))
	mux.HandleFunc("PUT /members/{memberID}", auth(c.Member.Update))
	mux.HandleFunc("DELETE /members/{memberID}", admin(c.Member.Delete))

	// Payments and revenue
	mux.HandleFunc("POST /payments", auth(c.Payment.Record))
	mux.HandleFunc("GET /members/{memberID}/payments", auth(c.Payment.ListByMember))
	mux.HandleFunc("GET /finance/revenue", admin(c.Payment.MonthlyRevenue))

	// Check-ins
	mux.HandleFunc("POST /checkins", auth(c.CheckIn.Create))
	mux.HandleFunc("GET /members/{memberID}/checkins", auth(c.CheckIn.ListByMember))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
