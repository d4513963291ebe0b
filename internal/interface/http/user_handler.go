package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	userapp "github.com/photobook/user-image-service/internal/application"
	"github.com/photobook/user-image-service/internal/interface/middleware"
	"github.com/photobook/user-image-service/pkg/response"
	"github.com/photobook/user-image-service/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	validation.Init()
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role" binding:"omitempty,userrole"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type searchRequest struct {
	Q    string `form:"q"`
	Size int    `form:"size"`
}

// Register accepts multipart form data with an optional photo file
func (h *UserHandler) Register(c *gin.Context) {
	req := registerRequest{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Role:     strings.TrimSpace(c.PostForm("role")),
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input", validation.ToDetails(err))
		return
	}

	in := userapp.RegisterInput{Username: req.Username, Email: req.Email, Password: req.Password, Role: req.Role}

	fh, err := c.FormFile("photo")
	switch {
	case err == nil:
		f, oerr := fh.Open()
		if oerr != nil {
			serverError(c, h.Logger, "open photo upload failed", oerr)
			return
		}
		defer func() { _ = f.Close() }()
		in.Photo = uploadFrom(fh, f)
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		response.Error(c, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	if _, err := h.Svc.Register(c.Request.Context(), in); err != nil {
		switch {
		case errors.Is(err, userapp.ErrEmailInUse):
			response.Error(c, http.StatusBadRequest, "Email already in use.", nil)
		case errors.Is(err, userapp.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "Invalid input", map[string]string{"role": "must be one of: admin, user, manager"})
		case errors.Is(err, userapp.ErrPasswordTooLong):
			response.Error(c, http.StatusBadRequest, "Invalid input", map[string]string{"password": "must be at most 72 bytes"})
		default:
			serverError(c, h.Logger, "register failed", err)
		}
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "User not found", nil)
		case errors.Is(err, userapp.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, "Invalid credentials", nil)
		default:
			serverError(c, h.Logger, "login failed", err)
		}
		return
	}

	u := res.User
	response.Success(c, http.StatusOK, "Login successful", response.Fields{
		"token": res.Token,
		"role":  string(u.Role),
		"user": loginUserView{
			Username: u.Username,
			Email:    u.Email,
			Photo:    u.Photo,
			UUID:     u.UUID.String(),
		},
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		serverError(c, h.Logger, "list users failed", err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", response.Fields{"users": newUserViews(users)})
}

// UploadPhoto replaces the profile photo of the user named by the user-email header
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No photo uploaded.", nil)
		return
	}
	email := strings.TrimSpace(c.GetHeader("user-email"))
	if email == "" {
		response.Error(c, http.StatusBadRequest, "User email is missing.", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		serverError(c, h.Logger, "open photo upload failed", err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UpdatePhoto(c.Request.Context(), email, *uploadFrom(fh, f))
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found.", nil)
			return
		}
		serverError(c, h.Logger, "update photo failed", err)
		return
	}
	response.Success(c, http.StatusOK, "Profile photo uploaded successfully", response.Fields{"user": newUserView(u)})
}

func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, "Missing access token", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), claims.UUID)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		serverError(c, h.Logger, "get profile failed", err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", response.Fields{"user": newUserView(u)})
}

func (h *UserHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input", validation.ToDetails(err))
		return
	}
	docs, err := h.Svc.SearchUsers(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		serverError(c, h.Logger, "search users failed", err)
		return
	}
	views := make([]userView, 0, len(docs))
	for _, d := range docs {
		u := d.ToUser()
		views = append(views, newUserView(&u))
	}
	response.Success(c, http.StatusOK, "Users retrieved", response.Fields{"users": views})
}

func uploadFrom(fh *multipart.FileHeader, f multipart.File) *userapp.Upload {
	return &userapp.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
}
