package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/internal/application"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/interface/middleware"
	"github.com/khalilbouhlel1/threadly-api/pkg/response"
	"github.com/khalilbouhlel1/threadly-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"required,min=2"`
	Email string `json:"email" binding:"required,email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,strongpwd"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"_id":       u.ID.Hex(),
		"name":      u.Name,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Fail(c, http.StatusBadRequest, "User already exists", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.OK(c, http.StatusCreated, "Registration successful", gin.H{
		"token": res.Token,
		"user":  userView(res.User),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "User doesn't exist", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Fail(c, http.StatusBadRequest, "Invalid credentials", nil)
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	response.OK(c, http.StatusOK, "Login successful", gin.H{
		"token": res.Token,
		"user":  userView(res.User),
	})
}

func (h *UserHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid admin credentials", nil)
		return
	}

	response.OK(c, http.StatusOK, "Admin login successful", gin.H{"token": res.Token})
}

// Verify answers the storefront's periodic session check: the token already
// passed auth middleware, so only the identity echo remains.
func (h *UserHandler) Verify(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, http.StatusNotFound, "User doesn't exist", nil)
		return
	}
	response.OK(c, http.StatusOK, "token is valid", gin.H{"user": userView(u)})
}

func (h *UserHandler) VerifyAdmin(c *gin.Context) {
	response.OK(c, http.StatusOK, "admin token is valid", nil)
}

// Logout is stateless with bearer tokens; the client discards its copy.
func (h *UserHandler) Logout(c *gin.Context) {
	response.OK(c, http.StatusOK, "Logged out", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Profile updated", gin.H{"user": userView(u)})
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	// Same response whether or not the email exists.
	response.OK(c, http.StatusOK, "If that email is registered, a reset link has been sent", nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, application.ErrResetTokenInvalid) {
			response.Fail(c, http.StatusBadRequest, "Invalid or expired reset token", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.OK(c, http.StatusOK, "Password has been reset", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	views := make([]gin.H, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	response.OK(c, http.StatusOK, "", gin.H{"users": views})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "User doesn't exist", nil)
		return
	}
	response.OK(c, http.StatusOK, "", gin.H{"user": userView(u)})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), req.Name, req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User updated", gin.H{"user": userView(u)})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User deleted", nil)
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "User doesn't exist", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, "Email is already in use", nil)
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
