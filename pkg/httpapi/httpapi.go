// Package httpapi holds the HTTP plumbing every service shares: the chi
// router with its middleware stack, the JSON error envelope and the health
// endpoint.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/logging"
	"github.com/nazeru/contractforge-go/pkg/metrics"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

// ErrorBody is the envelope every service answers failures with.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResolveFunc maps an error to (status, code, message).
type ResolveFunc func(error) (int, string, string)

type Options struct {
	Service     string
	Metrics     *metrics.ServerMetrics
	Gatherer    prometheus.Gatherer
	LogRequests bool
	// Resolve maps recovered panics; defaults to apperrors.Resolve.
	Resolve ResolveFunc
}

// NewRouter returns a chi router with request ids, panic recovery, optional
// request logging and metrics, plus /health and /metrics.
func NewRouter(opts Options) chi.Router {
	resolve := opts.Resolve
	if resolve == nil {
		resolve = apperrors.Resolve
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	if opts.LogRequests {
		r.Use(requestLogger(opts.Service))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(recoverer(opts.Service, resolve))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteResolved(w, http.StatusNotFound, apperrors.CodeNotFound, "Route "+r.URL.Path+" not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteResolved(w, http.StatusMethodNotAllowed, apperrors.CodeMethod, "Method "+r.Method+" not allowed")
	})
	r.Get("/health", Health(opts.Service))
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}
	return r
}

func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": service})
	}
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError writes err through the total apperrors mapping.
func WriteError(w http.ResponseWriter, err error) {
	status, code, msg := apperrors.Resolve(err)
	WriteResolved(w, status, code, msg)
}

func WriteResolved(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorBody{Error: code, Message: message})
}

// DecodeJSON decodes a request body into v, answering malformed input with
// INVALID_JSON.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Invalid(apperrors.CodeInvalidJSON, "Request body is required")
		}
		return apperrors.Invalid(apperrors.CodeInvalidJSON, "Invalid JSON body: "+err.Error())
	}
	return nil
}

func recoverer(service string, resolve ResolveFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				logging.Log(logging.Fields{
					Service:   service,
					RequestID: requestid.From(r.Context()),
					Method:    r.Method,
					Path:      r.URL.Path,
					Status:    "panic",
					Message:   err.Error(),
				})
				status, code, msg := resolve(err)
				WriteResolved(w, status, code, msg)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logging.Log(logging.Fields{
				Service:    service,
				RequestID:  requestid.From(r.Context()),
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     strconv.Itoa(ww.Status()),
				DurationMS: time.Since(start).Milliseconds(),
			})
		})
	}
}
