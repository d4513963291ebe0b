package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/photobook/user-image-service/internal/interface/http"
)

type ImageModule struct {
	Handler *handlers.ImageHandler
}

func NewImageModule(h *handlers.ImageHandler) *ImageModule {
	return &ImageModule{Handler: h}
}

func (m *ImageModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users/:uuid/images", m.Handler.Upload)
	rg.GET("/images/:id", m.Handler.Download)
}
