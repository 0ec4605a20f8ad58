package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"parkspot/docs"
	"parkspot/internal/auth"
	"parkspot/internal/domain/storage"
	"parkspot/internal/hashid"
	"parkspot/internal/mailer"
	"parkspot/internal/notifications"
	"parkspot/internal/ratelimiter"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	push          notifications.PushSender
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	shareCodes    *hashid.Codec
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	auth        authConfig
	mail        mailConfig
	rateLimiter ratelimiter.Config
	shareSalt   string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	// secret is shared with the external identity provider; this service
	// only validates, it never issues.
	secret string
	aud    string
	iss    string
}

type basicConfig struct {
	user string
	// bcrypt hash of the ops password, not the password itself
	passHash string
}

type mailConfig struct {
	fromEmail string
	// moderationInbox receives a note whenever a submission is decided
	moderationInbox string
	smtp            smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/parks", func(r chi.Router) {
			// reads work for anonymous callers too; the policy evaluator
			// decides row by row what they get back
			r.Group(func(r chi.Router) {
				r.Use(app.OptionalAuthTokenMiddleware)
				r.Get("/", app.listParksHandler)
				r.Get("/code/{code}", app.getParkByCodeHandler)
				r.Get("/{parkID}", app.getParkHandler)
				r.Get("/{parkID}/photos", app.listParkPhotosHandler)
				r.Get("/{parkID}/comments", app.listParkCommentsHandler)
				r.Get("/{parkID}/tags", app.listParkTagsHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createParkHandler)
				r.Post("/{parkID}/votes", app.castVoteHandler)
				r.Get("/{parkID}/votes/me", app.getMyVoteHandler)
				r.Post("/{parkID}/photos", app.uploadParkPhotoHandler)
				r.Post("/{parkID}/comments", app.createParkCommentHandler)
				r.Post("/{parkID}/tags", app.createParkTagHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
				r.Delete("/{parkID}", app.deleteParkHandler)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
			r.Get("/parks", app.adminListParksHandler)
			r.Patch("/photos/{photoID}/approve", app.approvePhotoHandler)
			r.Patch("/photos/{photoID}/unapprove", app.unapprovePhotoHandler)
			r.Delete("/photos/{photoID}", app.deletePhotoHandler)
			r.Patch("/comments/{commentID}/report", app.reportCommentHandler)
			r.Patch("/comments/{commentID}/unreport", app.unreportCommentHandler)
			r.Delete("/comments/{commentID}", app.deleteCommentHandler)
			r.Post("/push-tokens/bulk-remove", app.bulkRemovePushTokensHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/me/votes", app.listMyVotesHandler)
			r.Post("/push-tokens", app.registerPushTokenHandler)
			r.Delete("/push-tokens", app.removePushTokenHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
