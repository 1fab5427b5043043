// Package router assembles the gin engine with all middlewares and
// routes.
package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spendsense/backend/internal/controllers/healthz"
	v1 "github.com/spendsense/backend/internal/controllers/v1"
)

// Set at build time with ldflags.
var version = "0.0.0"

// Router sets up the router, its middlewares and all routes.
func Router() (*gin.Engine, error) {
	r := gin.New()

	// Client IPs are never processed.
	r.ForwardedByClientIP = false

	// HTTP 405 when the path exists but the method does not.
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, _ io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs.
	gin.DebugPrintRouteFunc = func(string, string, string, int) {}

	// Don’t trust any proxy, no client IPs are processed anyway.
	_ = r.SetTrustedProxies([]string{})

	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r)
	}

	healthz.RegisterRoutes(r.Group("/healthz"))

	apiV1 := r.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.OPTIONS("", OptionsV1)
	}

	v1.RegisterTransactionRoutes(apiV1.Group("/transactions"))
	v1.RegisterCategoryRoutes(apiV1.Group("/categories"))
	v1.RegisterBudgetRoutes(apiV1.Group("/budgets"))
	v1.RegisterGoalRoutes(apiV1.Group("/goals"))
	v1.RegisterAnalyticsRoutes(apiV1.Group("/analytics"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"/healthz"`
	Version string `json:"version" example:"/version"`
	V1      string `json:"v1" example:"/v1"`
}

// GetRoot returns the entrypoint of the API, listing the top-level
// routes.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

func OptionsRoot(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
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
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Transactions string `json:"transactions" example:"/v1/transactions"`
	Categories   string `json:"categories" example:"/v1/categories"`
	Budgets      string `json:"budgets" example:"/v1/budgets"`
	Goals        string `json:"goals" example:"/v1/goals"`
	Analytics    string `json:"analytics" example:"/v1/analytics"`
}

// GetV1 returns the links for API v1.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions: "/v1/transactions",
			Categories:   "/v1/categories",
			Budgets:      "/v1/budgets",
			Goals:        "/v1/goals",
			Analytics:    "/v1/analytics",
		},
	})
}

func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}
