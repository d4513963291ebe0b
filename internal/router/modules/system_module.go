package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type SystemOptions struct {
	UploadDir      string
	ServeUploads   bool
	MetricsEnabled bool
	Health         func(ctx context.Context) error
}

// SystemModule exposes health, metrics and the local upload directory
type SystemModule struct {
	opts SystemOptions
}

func NewSystemModule(opts SystemOptions) *SystemModule {
	return &SystemModule{opts: opts}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
	if m.opts.MetricsEnabled {
		rg.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if m.opts.ServeUploads && m.opts.UploadDir != "" {
		rg.Static("/uploads", m.opts.UploadDir)
	}
}

func (m *SystemModule) health(c *gin.Context) {
	if m.opts.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.opts.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
