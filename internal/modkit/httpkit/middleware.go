package httpkit

import (
	"net/http"
	"time"

	"locbridge/internal/platform/net/middleware"
)

// RunTimeout bounds one API request; export and reconstruct runs on large projects are slow
const RunTimeout = 10 * time.Minute

// CommonStack returns the baseline middleware slice for the /api scope
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext(),

		// safety
		middleware.RecoverJSON,
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 30 * time.Second}),

		middleware.CORS(middleware.CORSOptions{}),
		middleware.Timeout(RunTimeout),
	}
}
