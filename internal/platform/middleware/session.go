// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/internal/platform/sec"
)

// SessionResolver turns a session cookie value into live session claims.
// It returns an error when the token is invalid or the session has ended.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*sec.SessionClaims, error)
}

// LoadSession resolves the session cookie, if any, and stores the claims in
// the request context. Requests without a valid session continue anonymously.
func LoadSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := resolver.Resolve(request.Context(), cookie.Value)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_rejected",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a resolved session with a 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSession(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Admin Gate

// GateDecision is the outcome of evaluating [Gate] for a page request.
type GateDecision int

const (
	// GatePass lets the request through unchanged.
	GatePass GateDecision = iota
	// GateToLogin sends an anonymous visitor of an admin page to sign in.
	GateToLogin
	// GateToDashboard sends a signed-in visitor of the login page to the dashboard.
	GateToDashboard
)

// Gate decides what happens to a page request given whether the visitor
// holds a valid session. It has no side effects.
func Gate(path string, authenticated bool) GateDecision {
	switch {
	case !authenticated && isAdminPath(path):
		return GateToLogin
	case authenticated && path == constants.LoginPath:
		return GateToDashboard
	default:
		return GatePass
	}
}

// AdminGate applies [Gate] using the session resolved by [LoadSession].
func AdminGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authenticated := ctxutil.GetSession(request.Context()) != nil

		switch Gate(request.URL.Path, authenticated) {
		case GateToLogin:
			http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)
		case GateToDashboard:
			http.Redirect(writer, request, constants.DashboardPath, http.StatusSeeOther)
		default:
			next.ServeHTTP(writer, request)
		}
	})
}

func isAdminPath(path string) bool {
	return path == constants.AdminPathPrefix || strings.HasPrefix(path, constants.AdminPathPrefix+"/")
}
