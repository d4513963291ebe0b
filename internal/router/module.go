package router

import (
	"github.com/gin-gonic/gin"

	"github.com/photobook/user-image-service/internal/router/modules"
)

// Module mounts one feature's routes (users, images, system) on the root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

var (
	_ Module = (*modules.UserModule)(nil)
	_ Module = (*modules.ImageModule)(nil)
	_ Module = (*modules.SystemModule)(nil)
)
