// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ai drafts short article summaries with a hosted language model.

The editor uses the result to prefill a blog's description. Content is
reduced to plain text before it is sent upstream.
*/
package ai

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

// maxPromptRunes caps how much article text is sent upstream.
const maxPromptRunes = 20000

const summaryPrompt = `Summarize the following article in 150 characters or less, suitable for a meta description or a preview card: "%s"`

// Generator produces text for a prompt. *GeminiClient satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// # Service Layer

// Service builds summary prompts. A nil generator disables the feature.
type Service struct {
	generator Generator
	stripper  *bluemonday.Policy
	logger    *slog.Logger
}

// NewService constructs a new ai [Service].
func NewService(generator Generator, logger *slog.Logger) *Service {
	return &Service{
		generator: generator,
		stripper:  bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

/*
Summarize returns a meta-description sized summary of an HTML article.

Parameters:
  - context: context.Context
  - content: string (article HTML)

Returns:
  - string: The generated summary
  - error: 400 for empty content, 503 when disabled, 500 on upstream failure
*/
func (service *Service) Summarize(context context.Context, content string) (string, error) {
	text := service.plainText(content)
	if text == "" {
		return "", apperr.ValidationError("Content is required")
	}
	if service.generator == nil {
		return "", apperr.ServiceUnavailable("Summary assistant is not configured")
	}

	summary, err := service.generator.Generate(context, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		return "", apperr.InternalMsg("Failed to generate summary", err)
	}

	service.logger.InfoContext(context, "summary_generated",
		slog.Int("input_runes", len([]rune(text))),
		slog.Int("summary_runes", len([]rune(summary))),
	)
	return summary, nil
}

// plainText strips markup, decodes entities and collapses whitespace.
func (service *Service) plainText(content string) string {
	text := html.UnescapeString(service.stripper.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")

	if runes := []rune(text); len(runes) > maxPromptRunes {
		text = string(runes[:maxPromptRunes])
	}
	return text
}

// # Handler Implementation

// Handler implements the HTTP layer for the summary assistant.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ai [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the assistant endpoints. They require a session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Post("/summarize", handler.summarize)
}

type summarizeRequest struct {
	Content string `json:"content"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

/*
POST /api/ai/summarize.

Request (Body):
  - content: string (article HTML)

Response:
  - 200: {"summary": string}
  - 400: Content is required
  - 500: Failed to generate summary
*/
func (handler *Handler) summarize(writer http.ResponseWriter, request *http.Request) {
	var body summarizeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Summarize(request.Context(), body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summarizeResponse{Summary: summary})
}
