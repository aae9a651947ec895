// cmd/emre/serve.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/emresys/emre/internal/auth"
	"github.com/emresys/emre/internal/authz"
	"github.com/emresys/emre/internal/config"
	"github.com/emresys/emre/internal/email"
	"github.com/emresys/emre/internal/handler"
	"github.com/emresys/emre/internal/middleware"
	"github.com/emresys/emre/internal/repository"
	"github.com/emresys/emre/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Auth primitives and authorization guard
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)
	guard := authz.NewGuard(orgRepo, teamRepo)

	// Services
	sender := email.NewSender(cfg)
	userService := service.NewUserService(userRepo, passwordHasher, tokenManager)
	orgService := service.NewOrganizationService(orgRepo, userRepo, guard, sender)
	teamService := service.NewTeamService(teamRepo, orgRepo, guard)
	incidentService := service.NewIncidentService(incidentRepo, guard)
	resourceService := service.NewResourceService(resourceRepo, incidentRepo, guard)

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService, orgService, teamService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	teamHandler := handler.NewTeamHandler(teamService)
	incidentHandler := handler.NewIncidentHandler(incidentService)
	resourceHandler := handler.NewResourceHandler(resourceService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	authn := middleware.AuthMiddleware(tokenManager, userRepo)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/users", userHandler.RegisterHandler)
		r.Post("/auth/login", authHandler.LoginHandler)
		r.Post("/auth/logout", authHandler.LogoutHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Post("/auth/refresh-token", authHandler.RefreshTokenHandler)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.ProfileHandler)
				r.Put("/me", userHandler.UpdateProfileHandler)
				r.Get("/organizations/{orgID}/members", userHandler.ListOrgMembersHandler)
				r.Post("/organizations/{orgID}/members/{userID}/role", userHandler.UpdateOrgMemberRoleHandler)
				r.Post("/teams/{teamID}/members/{userID}/role", userHandler.UpdateTeamMemberRoleHandler)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Post("/", orgHandler.CreateHandler)
				r.Get("/", orgHandler.ListHandler)
				r.Get("/{orgID}", orgHandler.GetHandler)
				r.Put("/{orgID}", orgHandler.UpdateHandler)
				r.Post("/{orgID}/members/request", orgHandler.RequestMembershipHandler)
				r.Post("/{orgID}/members/{userID}/approve", orgHandler.ApproveMembershipHandler)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", teamHandler.CreateHandler)
				r.Get("/organization/{orgID}", teamHandler.ListByOrganizationHandler)
				r.Get("/{teamID}", teamHandler.GetHandler)
				r.Put("/{teamID}", teamHandler.UpdateHandler)
				r.Post("/{teamID}/members/{userID}", teamHandler.AddMemberHandler)
				r.Delete("/{teamID}/members/{userID}", teamHandler.RemoveMemberHandler)
			})

			r.Route("/incidents", func(r chi.Router) {
				r.Post("/", incidentHandler.CreateHandler)
				r.Get("/", incidentHandler.ListHandler)
				r.Get("/{incidentID}", incidentHandler.GetHandler)
				r.Put("/{incidentID}", incidentHandler.UpdateHandler)
				r.Post("/{incidentID}/updates", incidentHandler.AddUpdateHandler)
				r.Get("/{incidentID}/updates", incidentHandler.ListUpdatesHandler)
			})

			r.Route("/resources", func(r chi.Router) {
				r.Post("/", resourceHandler.CreateHandler)
				r.Get("/", resourceHandler.ListHandler)
				r.Get("/{resourceID}", resourceHandler.GetHandler)
				r.Put("/{resourceID}", resourceHandler.UpdateHandler)
				r.Post("/{resourceID}/assign", resourceHandler.AssignHandler)
				r.Post("/{resourceID}/return", resourceHandler.ReturnHandler)
				r.Get("/{resourceID}/assignments", resourceHandler.ListAssignmentsHandler)
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"Internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
