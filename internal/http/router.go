package http

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jmuiruri/staffhub/internal/http/handlers"
	"github.com/jmuiruri/staffhub/internal/http/middlewares"
	"github.com/jmuiruri/staffhub/internal/observability"
	"github.com/jmuiruri/staffhub/internal/repo/sqlite"
)

const maxBodyBytes = 1 << 20 // requests carry three short strings

func NewRouter(database *sql.DB, prom *observability.Prom, registry *prometheus.Registry, allowedOrigins []string) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(otelgin.Middleware("staffhub"))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(allowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if database == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return database.PingContext(ctx)
	}

	h := handlers.NewHealthHandler(ping)

	// wire up the repository and handlers
	employeesRepo := sqlite.NewEmployeesRepo(database, prom)
	employeesHandler := handlers.NewEmployeesHandler(employeesRepo)

	// the web client keeps one mutation in flight at a time; the limiter just
	// keeps scripted abuse off the write path
	writeLimiter := middlewares.NewRateLimiter(60, time.Minute)

	api := r.Group("/api")

	api.GET("/health", h.Health)

	api.GET("/employees", employeesHandler.ListEmployees)
	api.GET("/employees/:id", employeesHandler.GetEmployeeByID)

	writes := api.Group("")
	writes.Use(writeLimiter.RateLimiterMiddleware())
	writes.POST("/employees", employeesHandler.CreateEmployee)
	writes.PUT("/employees/:id", employeesHandler.UpdateEmployee)
	writes.DELETE("/employees/:id", employeesHandler.DeleteEmployee)

	r.GET("/readyz", h.Readyz)

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}
