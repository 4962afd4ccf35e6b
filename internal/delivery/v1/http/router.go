package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/cafe-kiosk/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/DRSN-tech/cafe-kiosk/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// HealthChecker проверяет доступность зависимостей для /healthz.
type HealthChecker interface {
	Ping() error
}

type Router struct {
	router     *chi.Mux
	logger     logger.Logger
	metrics    *metrics.ServerMetrics
	swaggerURL string
}

func NewRouter(router *chi.Mux, logger logger.Logger, metrics *metrics.ServerMetrics, swaggerURL string) *Router {
	return &Router{router: router, logger: logger, metrics: metrics, swaggerURL: swaggerURL}
}

func (r *Router) Init(
	prUC usecase.ProductUC,
	orderUC usecase.OrderUC,
	statsUC usecase.OrderStatisticsUC,
	mailUC usecase.MailUC,
	health HealthChecker,
	location *time.Location,
) {
	r.router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	if r.metrics != nil {
		r.router.Use(r.metrics.Middleware)
		r.router.Handle("/metrics", r.metrics.Handler())
	}

	r.router.Get("/healthz", healthHandler(health, r.logger))

	if r.swaggerURL != "" {
		r.router.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL(r.swaggerURL), // ссылка на JSON
		))
	}

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.Timeout(15 * time.Second))

		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(orderUC, statsUC, r.logger, location))
		registerMailRoutes(v1, NewMailHandler(mailUC, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/new", prHandler.createProduct)
		pr.Get("/selling", prHandler.getSellingProducts)
	})
}

func registerOrderRoutes(router chi.Router, orderHandler *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Get("/", orderHandler.findOrders)
		or.Post("/new", orderHandler.createOrder)
		or.Post("/{id}/payment", orderHandler.completePayment)
		or.Post("/statistics/mail", orderHandler.sendOrderStatisticsMail)
	})
}

func registerMailRoutes(router chi.Router, mailHandler *MailHandler) {
	router.Route("/mail", func(mr chi.Router) {
		mr.Post("/send", mailHandler.sendMail)
	})
}

func healthHandler(health HealthChecker, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if health != nil {
			if err := health.Ping(); err != nil {
				logger.Errorf(err, "health check failed")
				writeJSON(w, http.StatusServiceUnavailable, NewApiResponse(http.StatusServiceUnavailable, "database is unavailable", nil))
				return
			}
		}

		WriteSuccess(w, http.StatusOK, nil)
	}
}
