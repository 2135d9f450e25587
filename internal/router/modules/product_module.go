package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/khalilbouhlel1/threadly-api/internal/interface/http"
	"github.com/khalilbouhlel1/threadly-api/internal/interface/middleware"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

// ProductModule wires catalog routes under /api/product.
// Reads are public; every mutation sits behind the admin gate.

type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	product := rg.Group("/product")

	product.GET("/list", m.Handler.List)
	product.GET("/:id", m.Handler.Get)

	admin := product.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.POST("/", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/delete/:id", m.Handler.Delete)
	}
}
