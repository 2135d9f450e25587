package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/khalilbouhlel1/threadly-api/internal/container"
	handlers "github.com/khalilbouhlel1/threadly-api/internal/interface/http"
	"github.com/khalilbouhlel1/threadly-api/internal/interface/middleware"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

// NewsletterModule wires mailing list routes under /api/newsletter.
// Subscribe is public but rate limited per IP; send is admin-only;
// unsubscribe is a tokened public link clicked from the email footer.

type NewsletterModule struct {
	Handler *handlers.NewsletterHandler
	JWT     *helpers.JWTManager
}

func NewNewsletterModule(h *handlers.NewsletterHandler, jwt *helpers.JWTManager) *NewsletterModule {
	return &NewsletterModule{Handler: h, JWT: jwt}
}

func (m *NewsletterModule) Register(rg *gin.RouterGroup) {
	newsletter := rg.Group("/newsletter")
	cfg := container.GetConfig()

	subscribeLimiter := middleware.RateLimit(
		container.GetRedis(),
		cfg.NewsletterRateMax,
		cfg.NewsletterRateWindow,
		middleware.KeyByIP,
	)
	newsletter.POST("/subscribe", subscribeLimiter, m.Handler.Subscribe)
	newsletter.GET("/unsubscribe", m.Handler.Unsubscribe)

	admin := newsletter.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.POST("/send", m.Handler.Send)
	}
}
