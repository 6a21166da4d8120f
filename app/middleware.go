package app

import (
	"apiversions/logger"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "apiversions_http_requests_total",
	Help: "HTTP requests served, partitioned by API version, method and status code.",
}, []string{"api_version", "method", "code"})

// Instrument counts requests in apiversions_http_requests_total under the
// given api_version label.
func Instrument(version string) func(http.Handler) http.Handler {
	counter := requestsTotal.MustCurryWith(prometheus.Labels{"api_version": version})
	return func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerCounter(counter, next)
	}
}

// AccessLog writes one access log line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger.Access("%s %s %d %dB %s %s", r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

type brotliResponseWriter struct {
	http.ResponseWriter
	bw *brotli.Writer
}

func (w *brotliResponseWriter) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

// Compress encodes responses with brotli at the given quality when the
// client sends "br" in Accept-Encoding.
func Compress(level int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")
			if !acceptsBrotli(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Encoding", "br")
			w.Header().Del("Content-Length")
			bw := brotli.NewWriterLevel(w, level)
			defer bw.Close()
			next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, bw: bw}, r)
		})
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
