package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/poketrainer/skillhub/internal/auth"
	"github.com/poketrainer/skillhub/internal/cache"
	"github.com/poketrainer/skillhub/internal/config"
	"github.com/poketrainer/skillhub/internal/http/handlers"
	"github.com/poketrainer/skillhub/internal/http/middlewares"
	"github.com/poketrainer/skillhub/internal/observability"
	"github.com/poketrainer/skillhub/internal/pokeapi"
	"github.com/poketrainer/skillhub/internal/repo/memory"
	"github.com/poketrainer/skillhub/internal/repo/postgres"
	"github.com/poketrainer/skillhub/internal/security"
)

const abilitiesCacheTTL = 5 * time.Minute

// NewRouter is the composition root: collaborators are built here once and
// handed to handlers as plain constructor arguments.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("skillhub"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// credential store: postgres in production, in-memory when running
	// without a database (tests, local hacking)

	var store auth.UserStore

	if pool != nil {
		store = postgres.NewUsersRepo(pool, prom)
	} else {
		store = memory.NewUsersRepo()
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)
	flows := auth.NewService(store, security.Bcrypt{}, jwtManager)

	authHandler := handlers.NewAuthHandler(flows)

	r.POST("/auth/signup", authHandler.SignUp)
	r.POST("/auth/signin", authHandler.SignIn)

	// upstream abilities endpoint, behind the guard

	var skillsCache cache.Cache

	if cfg.RedisAddr != "" {
		skillsCache = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      abilitiesCacheTTL,
		})
	} else {
		skillsCache = cache.NewMemory(abilitiesCacheTTL)
	}

	pokeClient := pokeapi.New(cfg.PokeAPIBaseURL, prom)
	pokemonHandler := handlers.NewPokemonHandler(pokeClient, skillsCache)

	guard := middlewares.NewAuthMiddleware(jwtManager)

	protected := r.Group("/pokemon", guard.RequireAuth())
	protected.GET("/fetch-skills-by-pokemon-name-order-by-skill-name/:name", pokemonHandler.FetchSkillsByName)

	return r
}
