package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khalilbouhlel1/threadly-api/internal/container"
	handlers "github.com/khalilbouhlel1/threadly-api/internal/interface/http"
	"github.com/khalilbouhlel1/threadly-api/internal/interface/middleware"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

// UserModule wires account and auth routes under /api/user.
// Public: register, login, adminlogin, forgot/reset password.
// Authenticated: verify, logout, profile update.
// Admin: verify-admin plus the user CRUD used by the back office.

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")

	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath)

	user.POST("/register", loginLimiter, m.Handler.Register)
	user.POST("/login", loginLimiter, m.Handler.Login)
	user.POST("/adminlogin", loginLimiter, m.Handler.AdminLogin)
	user.POST("/forgot-password", resetLimiter, m.Handler.ForgotPassword)
	user.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)

	auth := user.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/verify", m.Handler.Verify)
		auth.POST("/logout", m.Handler.Logout)
		auth.PUT("/profile/update", m.Handler.UpdateProfile)
	}

	admin := user.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.GET("/verify-admin", m.Handler.VerifyAdmin)
		admin.GET("/allusers", m.Handler.ListUsers)
		admin.GET("/:id", m.Handler.GetUser)
		admin.PUT("/update/:id", m.Handler.UpdateUser)
		admin.DELETE("/delete/:id", m.Handler.DeleteUser)
	}
}
