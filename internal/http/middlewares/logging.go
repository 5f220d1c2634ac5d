package middlewares

import (
	"net/http"
	"time"

	httpx "github.com/dropDatabas3/hellogrant/internal/http"
	"github.com/dropDatabas3/hellogrant/internal/observability/logger"
)

// statusRecorder captura el status code y bytes escritos de la respuesta.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return // evitar llamadas múltiples
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.status = http.StatusOK
		s.wroteHeader = true
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// WithLogging registra cada request con el logger singleton y alimenta las
// métricas HTTP. El status y la duración salen del statusRecorder.
func WithLogging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := w.Header().Get("X-Request-ID")
			if requestID == "" {
				requestID = GetRequestID(r.Context())
			}

			rec := &statusRecorder{ResponseWriter: w}
			httpx.InflightAdd(1)
			next.ServeHTTP(rec, r)
			httpx.InflightAdd(-1)

			elapsed := time.Since(start)
			httpx.ObserveRequest(r.Method, r.URL.Path, rec.status, elapsed)

			logger.L().Info("request completed",
				logger.RequestID(requestID),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(rec.status),
				logger.Bytes(rec.bytes),
				logger.DurationMs(elapsed.Milliseconds()),
			)
		})
	}
}
