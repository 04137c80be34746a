package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/controllers"
	webhookcontrollers "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/controllers/webhooks"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	configsvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/configurations"
	deploysvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/deployment"
	ordersvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/config"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/metrics"
	pkgredis "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	ordersService ordersvc.Service,
	configurationsService configsvc.Service,
	deploymentService deploysvc.Service,
) http.Handler {
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		idemStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	readinessDeps := map[string]controllers.Pinger{"database": dbPinger}
	if redisClient != nil {
		readinessDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payment", webhookcontrollers.PaymentCallback(ordersService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireCustomer(logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/checkout", controllers.Checkout(ordersService, logg))
		r.Get("/purchases", controllers.Purchases(ordersService, logg))
		r.Put("/configurations", controllers.SaveConfigurations(configurationsService, logg))
		r.Post("/deployment", controllers.InitiateDeployment(deploymentService, logg))
	})

	return r
}
