// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

// Handler implements the HTTP layer for cover uploads.
type Handler struct {
	service *Service
}

// NewHandler constructs a new cover [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the cover endpoints. Both require a session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)

		admin.Post("/", handler.uploadCover)
		admin.Delete("/", handler.deleteCover)
	})
}

/*
POST /api/covers.

Request (multipart/form-data):
  - file: image (JPEG, PNG, GIF, WebP or AVIF, at most 5 MB)

Response:
  - 201: {"url": string}
  - 400: Missing, oversized or non-image file
  - 503: Cover storage is not configured
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxCoverBytes+multipartOverhead)
	if err := request.ParseMultipartForm(constants.MaxCoverBytes); err != nil {
		respond.Error(writer, request, fileError("File is missing or larger than 5 MB"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, fileError("File is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxCoverBytes+1))
	if err != nil {
		respond.Error(writer, request, apperr.InternalMsg("Failed to read file", err))
		return
	}

	upload, err := handler.service.Upload(request.Context(), header.Filename, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, upload)
}

type deleteRequest struct {
	URL string `json:"url"`
}

/*
DELETE /api/covers.

Request (Body):
  - url: string (a URL previously returned by the upload endpoint)

Response:
  - 204: No Content
  - 422: URL does not belong to cover storage
*/
func (handler *Handler) deleteCover(writer http.ResponseWriter, request *http.Request) {
	var body deleteRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), body.URL); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func fileError(message string) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: "file", Message: message})
}
