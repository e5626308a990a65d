package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alertflow/relay/pkg/logger"
)

// Healthcheck returns a handler usable for both liveness and readiness
// probes.
//
//   - Liveness: with no probe functions it returns 200 OK with body "ALIVE".
//   - Readiness: with probes it runs each one; all passing returns 200 OK
//     with body "READY", any failure returns 500 with body "NOT_READY".
func Healthcheck(ctx context.Context, log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
