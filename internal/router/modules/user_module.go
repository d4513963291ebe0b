package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/photobook/user-image-service/internal/interface/http"
	"github.com/photobook/user-image-service/internal/interface/middleware"
	"github.com/photobook/user-image-service/pkg/helpers"
)

// UserModule wires user HTTP handlers and JWT middleware into routes
// Public: POST /register, POST /login, GET /users, PUT /upload-photo
// Protected: GET /profile, GET /users/search
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
	rg.GET("/users", m.Handler.ListUsers)
	rg.PUT("/upload-photo", m.Handler.UploadPhoto)

	auth := rg.Group("/")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.GET("/users/search", m.Handler.Search)
	}
}
