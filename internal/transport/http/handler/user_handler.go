package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
	"github.com/Rohityadav8366/service-provider-platform/internal/service"
	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Mount(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/profile/:userId", h.Profile)
	users.GET("/verify-email", h.VerifyEmail)
	users.GET("/check-email", h.CheckEmail)
	users.GET("/health", h.Health)
}

type registerReq struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role" binding:"required"`
	FullName string      `json:"fullName" binding:"required"`
	Phone    string      `json:"phone" binding:"required,numeric,len=10"`

	BusinessName    string `json:"businessName"`
	Specialization  string `json:"specialization"`
	ExperienceYears *int   `json:"experienceYears"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	view, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		FullName:        req.FullName,
		Phone:           req.Phone,
		BusinessName:    req.BusinessName,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "User registered successfully. Please verify your email.", view)
}

// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, bindingError(err))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Login successful", res)
}

// GET /api/users/profile/:userId
func (h *UserHandler) Profile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Fail(c, domain.Validation(map[string]string{"userId": "must be a number"}))
		return
	}

	view, err := h.svc.Profile(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Profile retrieved successfully", view)
}

// GET /api/users/verify-email?token=...
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, domain.Validation(map[string]string{"token": "token is required"}))
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), token); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Email verified successfully", nil)
}

// GET /api/users/check-email?email=...
func (h *UserHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Fail(c, domain.Validation(map[string]string{"email": "email is required"}))
		return
	}

	exists, err := h.svc.EmailExists(c.Request.Context(), email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Email check completed", exists)
}

func (h *UserHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "User Service is running!")
}

// bindingError turns gin's validator errors into per-field messages.
func bindingError(err error) *domain.Error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.Validation(map[string]string{"body": "malformed request body"})
	}
	fields := map[string]string{}
	for _, ve := range ves {
		name := ve.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		fields[name] = messageFor(ve)
	}
	return domain.Validation(fields)
}

func messageFor(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "numeric":
		return "must contain digits only"
	case "len":
		return "must be exactly " + ve.Param() + " characters"
	default:
		return "is invalid"
	}
}
