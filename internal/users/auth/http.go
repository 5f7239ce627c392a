// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for sign-in and sign-out.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new auth [Handler]. secureCookies marks the session
// cookie Secure and should be set outside local development.
func NewHandler(authService *Service, secureCookies bool) *Handler {
	return &Handler{authService: authService, secureCookies: secureCookies}
}

// RegisterRoutes mounts the auth endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/session", handler.session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse never includes the token; it lives only in the HttpOnly cookie.
type sessionResponse struct {
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

/*
POST /api/auth/login.

Request (Body):
  - email: string
  - password: string

Response:
  - 200: {accountId, email, expiresAt} and the session cookie
  - 400: Validation failed
  - 401: Invalid email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.cookie(result.Token, result.Session.ExpiresAt))
	respond.OK(writer, sessionResponse{
		AccountID: result.Session.AccountID,
		Email:     result.Session.Email,
		ExpiresAt: result.Session.ExpiresAt,
	})
}

/*
POST /api/auth/logout.

Response:
  - 204: No Content, the session cookie is cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	expired := handler.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(writer, expired)
	respond.NoContent(writer)
}

/*
GET /api/auth/session.

Response:
  - 200: {accountId, email, expiresAt}
  - 401: Authentication required
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := sessionResponse{AccountID: claims.AccountID, Email: claims.Email}
	if claims.ExpiresAt != nil {
		response.ExpiresAt = claims.ExpiresAt.Time
	}
	respond.OK(writer, response)
}

func (handler *Handler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
