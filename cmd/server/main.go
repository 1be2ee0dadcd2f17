package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authsvc/internal/auth"
	"github.com/dmitrymomot/authsvc/internal/product"
	"github.com/dmitrymomot/authsvc/pkg/httpserver"
	"github.com/dmitrymomot/authsvc/pkg/jwt"
	"github.com/dmitrymomot/authsvc/pkg/logger"
	"github.com/dmitrymomot/authsvc/pkg/password"
	"github.com/dmitrymomot/authsvc/pkg/pg"
	"github.com/dmitrymomot/authsvc/pkg/respond"
)

type config struct {
	Logger logger.Config
	DB     pg.Config
	HTTP   httpserver.Config
	Auth   auth.Config
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		// Logger is not configured yet; this is the one place stderr is used directly.
		os.Stderr.WriteString("failed to parse config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Logger)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		return err
	}

	tokens, err := jwt.New([]byte(cfg.Auth.SigningKey))
	if err != nil {
		return err
	}

	authSvc := auth.NewService(
		cfg.Auth,
		auth.NewPostgresStorage(pool),
		password.New(bcrypt.DefaultCost),
		tokens,
		log,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Mount("/", auth.NewHandler(authSvc, log).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Use(jwt.Middleware(tokens))
		r.Mount("/", product.NewHandler(product.NewPostgresStorage(pool), log).Routes())
	})

	healthcheck := pg.Healthcheck(pool)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := healthcheck(r.Context()); err != nil {
			respond.Error(w, http.StatusServiceUnavailable, "unhealthy")
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return httpserver.Run(ctx, cfg.HTTP, r, log)
}
