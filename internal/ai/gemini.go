// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// geminiTimeout bounds a single generateContent call.
const geminiTimeout = 20 * time.Second

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("gemini: no text in response")

// GeminiOptions configures a [GeminiClient].
type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string // e.g. https://generativelanguage.googleapis.com/v1beta
}

// GeminiClient calls the Gemini REST API (POST /models/{model}:generateContent).
type GeminiClient struct {
	options GeminiOptions
	http    *http.Client
}

// NewGeminiClient constructs a new [GeminiClient].
func NewGeminiClient(options GeminiOptions) *GeminiClient {
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")
	return &GeminiClient{
		options: options,
		http:    &http.Client{Timeout: geminiTimeout},
	}
}

// Generate sends prompt as a single user turn and returns the first text part.
func (client *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", client.options.BaseURL, client.options.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", client.options.APIKey)

	resp, err := client.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("gemini unmarshal: %w", err)
	}

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", ErrEmptyResponse
}

// # Wire Types

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
