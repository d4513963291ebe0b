package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/photobook/user-image-service/pkg/helpers"
	"github.com/photobook/user-image-service/pkg/response"
)

// serverError logs err with request context and answers with a generic 500
func serverError(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	helpers.LogError(logger, msg, err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, "Server error", nil)
}
