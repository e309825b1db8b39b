package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/enlighten/internal/httputil"
	"github.com/banshee-data/enlighten/internal/interpolation"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	interp *interpolation.Interpolator
	// assetsHost overrides where rendered charts load echarts from; empty
	// means the go-echarts default CDN.
	assetsHost string
}

func NewServer(ip *interpolation.Interpolator) *Server {
	return &Server{interp: ip}
}

// WithAssetsHost serves chart pages that load echarts from host, for
// installations without internet access.
func (s *Server) WithAssetsHost(host string) *Server {
	s.assetsHost = host
	return s
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/interpolation", s.interpolationConfig)
	mux.HandleFunc("/api/interpolation/toggle", s.toggleInterpolation)
	mux.HandleFunc("/api/interpolation/axis", s.showAxis)
	mux.HandleFunc("/api/interpolation/process", s.processReading)
	mux.HandleFunc("/api/interpolation/chart", s.chartReading)
	mux.HandleFunc("/api/interpolation/plot", s.plotReading)
	return mux
}

// writeProcessError maps Process failures onto HTTP statuses: problems with
// the server's configuration are 409, problems with the submitted reading 422.
func (s *Server) writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interpolation.ErrNotConfigured), errors.Is(err, interpolation.ErrNoAxisModeSelected):
		httputil.Conflict(w, err.Error())
	case interpolation.IsReadingError(err):
		httputil.UnprocessableEntity(w, err.Error())
	default:
		httputil.InternalServerError(w, err.Error())
	}
}
