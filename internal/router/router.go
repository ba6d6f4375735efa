package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/centsible/backend/internal/config"
	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/httputil"
)

// This is set at build time via ldflags.
var version = "0.0.0"

// Router sets up the router with all middlewares and routes.
func Router(cfg *config.Config) *gin.Engine {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORS.AllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORS.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/healthz", GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles, only in debug mode
	if cfg.Server.Mode == gin.DebugMode {
		pprof.Register(r)
	}

	// API v1 setup
	api := r.Group("/v1")
	{
		api.GET("", GetV1)
		api.OPTIONS("", OptionsV1)
	}

	v1.RegisterAuthRoutes(api.Group("/auth"))

	authed := api.Group("", v1.AuthMiddleware())
	v1.RegisterUserRoutes(authed.Group("/users"))
	v1.RegisterCategoryRoutes(authed.Group("/categories"))
	v1.RegisterTransactionRoutes(authed.Group("/transactions"))
	v1.RegisterBudgetRoutes(authed.Group("/budgets"))
	v1.RegisterReportRoutes(authed.Group("/reports"))

	log.Info().Str("version", version).Msg("backend startup complete")

	return r
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version" example:"https://example.com/version"`
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// GetRoot is the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: "/version",
			Healthz: "/healthz",
			V1:      "/v1",
		},
	})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetHealth reports whether the backend is ready to serve requests.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Auth         string `json:"auth" example:"https://example.com/v1/auth"`
	Users        string `json:"users" example:"https://example.com/v1/users"`
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"`
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`
	Reports      string `json:"reports" example:"https://example.com/v1/reports"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:         "/v1/auth",
			Users:        "/v1/users",
			Categories:   "/v1/categories",
			Transactions: "/v1/transactions",
			Budgets:      "/v1/budgets",
			Reports:      "/v1/reports",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
