package bootstrap

import (
	"log/slog"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/safra-cheia/budget-backend/config"
	httpapi "github.com/safra-cheia/budget-backend/internal/api/http"
	"github.com/safra-cheia/budget-backend/internal/api/http/middleware"
	"github.com/safra-cheia/budget-backend/internal/auth"
	projcache "github.com/safra-cheia/budget-backend/internal/projects/cache"
	projhttp "github.com/safra-cheia/budget-backend/internal/projects/http"
	projrepo "github.com/safra-cheia/budget-backend/internal/projects/repository"
	projservice "github.com/safra-cheia/budget-backend/internal/projects/service"
	txhttp "github.com/safra-cheia/budget-backend/internal/transactions/http"
	txrepo "github.com/safra-cheia/budget-backend/internal/transactions/repository"
	txservice "github.com/safra-cheia/budget-backend/internal/transactions/service"
	"github.com/safra-cheia/budget-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	AuthClient  *firebaseauth.Client // nil means dev header auth
	Log         *slog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(middleware.CORS(dep.Cfg.CORS.AllowedOrigins))
	r.Use(middleware.RateLimit(dep.Cfg.Rate.RequestsPerSecond, dep.Cfg.Rate.Burst))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	userRepo := users.NewRepo(dep.DB)
	if dep.AuthClient != nil {
		api.Use(auth.RequireUser(dep.AuthClient, userRepo))
	} else {
		api.Use(auth.DevUser(userRepo))
	}

	listCache := projcache.NewListCache(dep.Redis,
		time.Duration(dep.Cfg.Redis.ListTTLSeconds)*time.Second, dep.Log)

	projectRepo := projrepo.NewRepo(dep.DB)
	projectSvc := projservice.NewProjectService(projectRepo, listCache)
	projectHandler := projhttp.NewHandler(projectSvc)

	ledgerSvc := txservice.NewLedgerService(txrepo.NewRepo(dep.DB), projectRepo, listCache, dep.Log)
	txHandler := txhttp.NewHandler(ledgerSvc)

	projectsGroup := api.Group("/projects")
	projectHandler.Register(projectsGroup)
	txHandler.RegisterProjectSubroutes(projectsGroup)

	txHandler.Register(api.Group("/transactions"))
	projectHandler.RegisterPortfolio(api.Group("/portfolio"))

	return r
}
