package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/localbites/localbites-services/api/internal/config"
	"github.com/localbites/localbites-services/api/internal/directory/application"
	mongodoc "github.com/localbites/localbites-services/api/internal/infrastructure/mongo"
	commonhttp "github.com/localbites/localbites-services/api/internal/interfaces/http/common"
	publichttp "github.com/localbites/localbites-services/api/internal/interfaces/http/public"
)

// Server manages the HTTP lifecycle and acts as the composition root: it
// wires repositories into services and services into handlers.
type Server struct {
	logger           *logrus.Logger
	client           *mongo.Client
	database         *mongo.Database
	storeService     application.StoreService
	storeQueries     application.StoreQueryService
	userService      application.UserService
	reviewService    application.ReviewService
	jwtConfig        config.JWTConfig
	addr             string
	allowedOrigins   []string
	storeCollection  string
	reviewCollection string
	userCollection   string
}

// New assembles the application from Config and a connected Mongo client.
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:           cfg.Logger,
		client:           client,
		database:         client.Database(cfg.MongoDatabase),
		jwtConfig:        cfg.JWT,
		addr:             cfg.Addr,
		allowedOrigins:   append([]string(nil), cfg.AllowedOrigins...),
		storeCollection:  cfg.StoreCollection,
		reviewCollection: cfg.ReviewCollection,
		userCollection:   cfg.UserCollection,
	}

	storeRepo := mongodoc.NewStoreRepository(srv.database, cfg.StoreCollection, cfg.ReviewCollection)
	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	reviewRepo := mongodoc.NewReviewRepository(srv.database, cfg.ReviewCollection)

	srv.storeService = application.NewStoreService(storeRepo)
	srv.storeQueries = application.NewStoreQueryService(storeRepo, userRepo, reviewRepo)
	srv.userService = application.NewUserService(userRepo, storeRepo)
	srv.reviewService = application.NewReviewService(reviewRepo, storeRepo)

	return srv
}

// Run ensures indexes, assembles routing and middleware, and serves until
// shutdown. Infrastructure only; domain logic stays below this layer.
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongodoc.EnsureIndexes(ctx, s.database, s.storeCollection, s.reviewCollection, s.userCollection); err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthHandler())

	handler := publichttp.NewHandler(publichttp.Config{
		Logger:       s.logger,
		Stores:       s.storeService,
		StoreQueries: s.storeQueries,
		Users:        s.userService,
		Reviews:      s.reviewService,
	})
	handler.Register(router, s.authMiddleware)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.addr).Info("HTTP server listening")
		errChan <- httpServer.ListenAndServe()
	}()

	s.waitForShutdown(httpServer, errChan)
	return nil
}

// healthHandler reports Mongo reachability for monitoring probes.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware verifies the bearer token from the auth collaborator and
// upserts the principal so author references and hearts resolve locally.
// A missing or invalid token fails closed: the request stays anonymous and
// these routes reject it.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: "bearer token required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: "invalid access token"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		user, err := s.userService.EnsurePrincipal(ctx, application.Principal{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		})
		if err != nil {
			commonhttp.WriteError(s.logger, w, err)
			return
		}

		authUser := commonhttp.AuthenticatedUser{ID: user.ID, Email: user.Email, Name: user.Name}
		next.ServeHTTP(w, r.WithContext(commonhttp.ContextWithUser(r.Context(), authUser)))
	})
}

// parseAuthToken verifies signature, issuer, audience, and time bounds.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty access token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtConfig.Secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("access token rejected")
	}

	if s.jwtConfig.Issuer != "" && claims.Issuer != s.jwtConfig.Issuer {
		return nil, fmt.Errorf("issuer mismatch")
	}
	if s.jwtConfig.Audience != "" && !contains(claims.Audience, s.jwtConfig.Audience) {
		return nil, fmt.Errorf("audience mismatch")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("missing subject")
	}
	return claims, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// shutdown disconnects the Mongo client with a timeout to avoid leaking
// connections on exit.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.WithError(err).Warn("error disconnecting from MongoDB")
	}
}

// waitForShutdown watches ListenAndServe and OS signals for a graceful stop.
func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Fatal("server exited abnormally")
		}
	case sig := <-sigChan:
		s.logger.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.WithError(err).Warn("error during server shutdown")
		}
	}

	s.shutdown(context.Background())
}
