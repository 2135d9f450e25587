package router

import (
	"github.com/khalilbouhlel1/threadly-api/internal/application"
	"github.com/khalilbouhlel1/threadly-api/internal/container"
	mongodb "github.com/khalilbouhlel1/threadly-api/internal/infrastructure/mongodb"
	handlers "github.com/khalilbouhlel1/threadly-api/internal/interface/http"
	"github.com/khalilbouhlel1/threadly-api/internal/router/modules"
)

type Deps struct {
	UserHandler       *handlers.UserHandler
	ProductHandler    *handlers.ProductHandler
	NewsletterHandler *handlers.NewsletterHandler
}

func buildDeps() Deps {
	db := container.GetMongo()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	subscriberRepo := mongodb.NewSubscriberRepository(db)

	// The rabbit publisher may be nil when the broker is down; services
	// degrade instead of failing startup.
	var pub application.Publisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	userSvc := application.NewUserService(userRepo, container.GetJWT(), pub, logger, cfg)
	productSvc := application.NewProductService(productRepo, container.GetGCS(), cfg.GCSBucket, logger)
	newsletterSvc := application.NewNewsletterService(subscriberRepo, pub, logger, cfg)

	return Deps{
		UserHandler:       handlers.NewUserHandler(userSvc, logger),
		ProductHandler:    handlers.NewProductHandler(productSvc, logger),
		NewsletterHandler: handlers.NewNewsletterHandler(newsletterSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	r.Add(modules.NewUserModule(deps.UserHandler, container.GetJWT()))
	r.Add(modules.NewProductModule(deps.ProductHandler, container.GetJWT()))
	r.Add(modules.NewNewsletterModule(deps.NewsletterHandler, container.GetJWT()))
}
