// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

// Handler implements the HTTP layer for the signed-in account.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the account endpoints. All of them require a session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(me chi.Router) {
		me.Use(middleware.RequireAuth)

		me.Get("/me", handler.getMe)
		me.Put("/me/password", handler.changePassword)
	})
}

/*
GET /api/account/me.

Response:
  - 200: Profile
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), claims.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
PUT /api/account/me/password.

Request (Body):
  - currentPassword: string
  - newPassword: string (12 to 72 bytes)

Response:
  - 204: No Content
  - 400: Validation failed
  - 422: Current password is incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), claims.AccountID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
