package httpapi

import (
	"net/http"

	"github.com/vdsgame/vds-api/internal/platform/logging"
)

func NewServer(
	handler *Handler,
	auth SessionAuthenticator,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	router := NewRouter()
	registerSystemRoutes(router, handler)
	registerPublicRoutes(router, handler)
	registerPlayerRoutes(router, handler, auth, logger)
	registerInternalJobRoutes(router, handler, internalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, router))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
