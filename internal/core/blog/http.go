// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the blog catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new blog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the blog endpoints.
//
// # Routing Strategy
//
//   - Reader view (Public): listing, single blog and the summary counters.
//   - Management (Session): every state-mutating operation.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// ## Public Reader Endpoints
	router.Get("/", handler.listBlogs)
	router.Get("/summary", handler.getSummary)
	router.Get("/{id}", handler.getBlog)

	// ## Content Management (Session Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)

		admin.Post("/", handler.createBlog)
		admin.Patch("/{id}", handler.updateBlog)
		admin.Delete("/{id}", handler.deleteBlog)
		admin.Put("/{id}/status", handler.setStatus)
	})
}

// # Blog Endpoints

/*
GET /api/blogs.

Request:
  - status: string (optional, DRAFT or PUBLISHED)

Response:
  - 200: []Blog: Newest publication first
*/
func (handler *Handler) listBlogs(writer http.ResponseWriter, request *http.Request) {
	blogs, err := handler.service.ListBlogs(request.Context(), request.URL.Query().Get(FieldStatus))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, blogs)
}

/*
GET /api/blogs/summary.

Response:
  - 200: Summary
*/
func (handler *Handler) getSummary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

/*
GET /api/blogs/{id}.

Response:
  - 200: Blog
  - 404: Blog not found
*/
func (handler *Handler) getBlog(writer http.ResponseWriter, request *http.Request) {
	blog, err := handler.service.GetBlog(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, blog)
}

/*
POST /api/blogs.

Request (Body):
  - title, description, content: string (required)
  - imageUrl: string (optional)
  - tags: []string (at least one)

Response:
  - 201: Blog (status DRAFT)
  - 400: Validation failed
*/
func (handler *Handler) createBlog(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.service.CreateBlog(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, blog)
}

/*
PATCH /api/blogs/{id}.

Request (Body):
  - title, description, content: string (required, replaced)
  - imageUrl: string (omitted clears the cover)
  - tags: []string (omitted keeps the tag set, empty detaches all)

Response:
  - 200: Blog
  - 404: Blog not found
*/
func (handler *Handler) updateBlog(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.service.UpdateBlog(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, blog)
}

/*
DELETE /api/blogs/{id}.

Response:
  - 204: No Content
  - 404: Blog not found
*/
func (handler *Handler) deleteBlog(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBlog(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// statusRequest is the body of PUT /api/blogs/{id}/status.
type statusRequest struct {
	Status string `json:"status"`
}

/*
PUT /api/blogs/{id}/status.

Request (Body):
  - status: string (DRAFT or PUBLISHED)

Response:
  - 200: Blog with derived publishedAt
  - 400: Invalid JSON body.
  - 422: Status must be one of: DRAFT, PUBLISHED
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	var body statusRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid JSON body."))
		return
	}

	blog, err := handler.service.SetStatus(request.Context(), requestutil.ID(request, "id"), body.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, blog)
}
