// Package main is the entrypoint of the gym back-office API server.
//
//	@title			Gym Admin API
//	@version		1.0
//	@description	Multi-tenant back-office API for gyms: classes, recurring session programs, plans, members, payments, and check-ins.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gymadmin/config"
	_ "gymadmin/docs"
	authadapter "gymadmin/internal/adapters/auth"
	emailadapter "gymadmin/internal/adapters/email"
	delivery "gymadmin/internal/delivery/http"
	"gymadmin/internal/delivery/http/controllers"
	"gymadmin/internal/delivery/http/middleware"
	"gymadmin/internal/repository/postgres"
	"gymadmin/internal/services"

	_ "github.com/lib/pq"
)

const contextTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	// Repositories
	tenantRepo := postgres.NewTenantRepository(db)
	userRepo := postgres.NewUserRepository(db)
	classRepo := postgres.NewClassRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokenCodec := authadapter.NewJWTCodec(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddr,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, tenantRepo, hasher, tokenCodec, cfg.TokenExpiry, contextTimeout)
	classService := services.NewClassService(classRepo, contextTimeout)
	programService := services.NewProgramService(sessionRepo, classRepo, tenantRepo, contextTimeout)
	planService := services.NewPlanService(planRepo, contextTimeout)
	memberService := services.NewMemberService(memberRepo, planRepo, tenantRepo, emailService, logger, contextTimeout)
	paymentService := services.NewPaymentService(paymentRepo, memberRepo, planRepo, contextTimeout)
	checkInService := services.NewCheckInService(checkInRepo, memberRepo, sessionRepo, contextTimeout)

	// HTTP
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:    controllers.NewAuthController(logger, authService),
		Class:   controllers.NewClassController(logger, classService),
		Program: controllers.NewProgramController(logger, programService),
		Plan:    controllers.NewPlanController(logger, planService),
		Member:  controllers.NewMemberController(logger, memberService),
		Payment: controllers.NewPaymentController(logger, paymentService),
		CheckIn: controllers.NewCheckInController(logger, checkInService),
	}, tokenCodec, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
