package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/molekadoces/dashboard_backend/config"
	"github.com/molekadoces/dashboard_backend/ingestion"
	"github.com/molekadoces/dashboard_backend/middlewares"
	"github.com/molekadoces/dashboard_backend/utils"
)

// datasetHolder carries the one ingestion result of the session. The record
// slices are never written after LoadData returns, so readers only need the
// lock to observe the pointer swap.
type datasetHolder struct {
	mu      sync.RWMutex
	ds      *ingestion.Dataset
	loadErr error
	loaded  bool
}

func (h *datasetHolder) set(ds *ingestion.Dataset, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ds = ds
	h.loadErr = err
	h.loaded = true
}

func (h *datasetHolder) get() (*ingestion.Dataset, error, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds, h.loadErr, h.loaded
}

func newRouter(settings *config.Settings, holder *datasetHolder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CorrelationMiddleware())

	// CORS sits before the readiness gate so preflights get their headers
	// even while the workbook is loading.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = settings.CorsOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "x-correlation-id")
	r.Use(cors.New(corsConfig))

	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}
		_, loadErr, loaded := holder.get()
		if !loaded {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": utils.ErrorDataNotReady.Error()})
			return
		}
		if loadErr != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": loadErr.Error()})
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	registerRoutes(r, holder)
	return r
}

func main() {
	logger := config.GetLogger()

	settings, err := config.LoadSettings()
	if err != nil {
		logger.WithField("module", "main").Fatal(err.Error())
	}

	// Shutdown coordination: drain gracefully on SIGTERM/interrupt.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	holder := &datasetHolder{}

	// Start the HTTP server first; /api endpoints answer 503 until the
	// workbook is in. Ingestion runs exactly once per session — a failed
	// load stays failed until restart (no retries).
	r := newRouter(settings, holder)

	go func() {
		ds, err := ingestion.LoadData(sigCtx, settings.WorkbookPath)
		if err != nil {
			config.LogError(logger, "main", "main", "loading workbook", settings.WorkbookPath, err)
		}
		holder.set(ds, err)
	}()

	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithField("module", "main").Fatal(err.Error())
		}
	}()

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "main", "main", "server shutdown", nil, err)
	}
}
