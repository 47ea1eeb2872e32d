package httpapi

import (
	"net/http"

	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	MetricsEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
	AdminAPIKey        string
}

func NewRouter(handler *Handler, metrics *observability.Metrics, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metrics, cfg)
	registerPublicDomainRoutes(mux, handler)
	registerAdminRoutes(mux, handler, cfg.AdminAPIKey)
	registerUserRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(CORS(cfg.CORSAllowedOrigins, RequestLogging(logger, metrics, recoverPanic(logger, mux))))
}
