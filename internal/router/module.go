package router

import "github.com/gin-gonic/gin"

// Module is a feature area (users, catalog, newsletter) that hangs its
// routes off the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
