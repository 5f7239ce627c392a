// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cover_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/core/cover"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
	"github.com/taibuivan/inkpost/internal/platform/sec"
)

const baseURL = "https://cdn.inkpost.dev"

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type memoryStore struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string]string{}}
}

func (store *memoryStore) Put(_ context.Context, key, contentType string, _ []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[key] = contentType
	return nil
}

func (store *memoryStore) Remove(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.objects, key)
	return nil
}

func (store *memoryStore) URL(key string) string { return baseURL + "/" + key }

func (store *memoryStore) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, baseURL+"/")
	return key, ok && key != ""
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

/*
TestUpload_StoresImage verifies the key layout and the sniffed content type.
*/
func TestUpload_StoresImage(t *testing.T) {
	store := newMemoryStore()
	service := cover.NewService(store, discard())

	upload, err := service.Upload(context.Background(), "Café Crème.PNG", pngHeader)
	require.NoError(t, err)

	key := strings.TrimPrefix(upload.URL, baseURL+"/")
	assert.Regexp(t, `^covers/\d{13}-[a-z0-9_-]{8}-cafe-creme\.png$`, key)
	assert.Equal(t, "image/png", store.objects[key])
}

/*
TestUpload_AddsDetectedExtension verifies names without an extension get one from the content.
*/
func TestUpload_AddsDetectedExtension(t *testing.T) {
	service := cover.NewService(newMemoryStore(), discard())

	upload, err := service.Upload(context.Background(), "cover", pngHeader)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(upload.URL, "-cover.png"), upload.URL)
}

/*
TestUpload_Rejects verifies empty, oversized and non-image payloads.
*/
func TestUpload_Rejects(t *testing.T) {
	oversized := append(bytes.Clone(pngHeader), make([]byte, constants.MaxCoverBytes)...)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"oversized", oversized},
		{"text", []byte("just some text")},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			service := cover.NewService(store, discard())

			_, err := service.Upload(context.Background(), "x.png", tt.data)

			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
			assert.Empty(t, store.objects)
		})
	}
}

/*
TestDisabledStorage verifies a missing store reports 503 and cleanup is a no-op.
*/
func TestDisabledStorage(t *testing.T) {
	service := cover.NewService(nil, discard())

	_, err := service.Upload(context.Background(), "x.png", pngHeader)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnavailable))

	err = service.Delete(context.Background(), baseURL+"/covers/a.png")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnavailable))

	assert.NoError(t, service.RemoveByURL(context.Background(), baseURL+"/covers/a.png"))
}

/*
TestDelete verifies owned covers are removed and foreign URLs are rejected.
*/
func TestDelete(t *testing.T) {
	store := newMemoryStore()
	service := cover.NewService(store, discard())
	ctx := context.Background()

	upload, err := service.Upload(ctx, "a.png", pngHeader)
	require.NoError(t, err)
	require.Len(t, store.objects, 1)

	require.NoError(t, service.Delete(ctx, upload.URL))
	assert.Empty(t, store.objects)

	for _, foreign := range []string{
		"https://elsewhere.example.com/covers/a.png",
		baseURL + "/avatars/a.png",
		baseURL + "/covers/../secrets",
	} {
		err := service.Delete(ctx, foreign)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable), foreign)
		assert.NoError(t, service.RemoveByURL(ctx, foreign))
	}
}

func multipartRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/covers", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	return request
}

func signIn(request *http.Request) *http.Request {
	claims := &sec.SessionClaims{AccountID: "acc-1", Email: "admin@inkpost.dev"}
	return request.WithContext(ctxutil.WithSession(request.Context(), claims))
}

/*
TestHTTP_Upload verifies the multipart endpoint and its session requirement.
*/
func TestHTTP_Upload(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/api/covers", cover.NewHandler(cover.NewService(newMemoryStore(), discard())).RegisterRoutes)

	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, multipartRequest(t, "a.png", pngHeader))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, signIn(multipartRequest(t, "a.png", pngHeader)))
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"url":"`+baseURL+`/covers/`)

	deleted := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/api/covers", strings.NewReader(`{"url":"https://elsewhere.example.com/x.png"}`))
	router.ServeHTTP(deleted, signIn(request))
	assert.Equal(t, http.StatusUnprocessableEntity, deleted.Code)
}
