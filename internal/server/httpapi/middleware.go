package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/services"
)

type ctxKey int

const claimsKey ctxKey = iota

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe tags every request with a request id, recovers panics, and then
// logs and measures it once it completes.
func (h *handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(common.RequestIDHeaderName)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				h.logger.Error(r.Context(), "panic recovered", "panic", p, "stack", string(debug.Stack()))
				writeError(rec, http.StatusInternalServerError, "Server side issue.")
			}
			elapsed := time.Since(start)
			h.metrics.observe(r, rec.status, elapsed)
			h.logger.Info(r.Context(), "request",
				"method", r.Method,
				"route", routeOf(r),
				"status", rec.status,
				"duration", elapsed,
				"request_id", reqID,
			)
		}()

		next.ServeHTTP(rec, r)
	})
}

// authenticate requires a valid session token.
func (h *handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.sessions.Authenticate(r.Header.Get(common.AuthHeaderName))
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// scopeOrg restricts {orgId} routes to the principal's own org, unless it
// holds a system session, and to orgs that exist.
func (h *handler) scopeOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["orgId"]
		if !claimsFrom(r.Context()).CanAccess(orgID) {
			h.writeDomainError(w, r, services.NewForbidden("Access denied."))
			return
		}
		if err := h.orgs.Require(r.Context(), orgID); err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
