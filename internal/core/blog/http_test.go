// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/core/blog"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

type api struct {
	*fixture
	router chi.Router
}

// newAPI mounts the blog routes. Requests carrying the "signed-in" header get a session.
func newAPI() *api {
	f := newFixture()
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get("signed-in") != "" {
				claims := &sec.SessionClaims{AccountID: "acc-1", Email: "admin@inkpost.dev"}
				request = request.WithContext(ctxutil.WithSession(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/api/blogs", blog.NewHandler(f.service).RegisterRoutes)
	return &api{fixture: f, router: router}
}

func (a *api) do(t *testing.T, method, path, body string, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if signedIn {
		request.Header.Set("signed-in", "1")
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

// blogJSON mirrors the wire shape so field names are asserted, not just values.
type blogJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ImageURL    *string    `json:"imageUrl"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Tags        []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
}

const createBody = `{"title":"Hello","description":"First","content":"<p>x</p>","tags":["go","db"]}`

/*
TestHTTP_CreateBlog verifies the 201 body shape of a new draft.
*/
func TestHTTP_CreateBlog(t *testing.T) {
	a := newAPI()

	recorder := a.do(t, http.MethodPost, "/api/blogs", createBody, true)
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := decode[blogJSON](t, recorder)
	assert.True(t, uuid.Valid(created.ID))
	assert.Equal(t, "DRAFT", created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.Nil(t, created.ImageURL)
	assert.Len(t, created.Tags, 2)
	assert.Contains(t, recorder.Body.String(), `"publishedAt":null`)
}

/*
TestHTTP_MutationsRequireSession verifies anonymous writes get a 401 and reads stay public.
*/
func TestHTTP_MutationsRequireSession(t *testing.T) {
	a := newAPI()
	id := uuid.New()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/blogs"},
		{http.MethodPatch, "/api/blogs/" + id},
		{http.MethodDelete, "/api/blogs/" + id},
		{http.MethodPut, "/api/blogs/" + id + "/status"},
	} {
		recorder := a.do(t, tc.method, tc.path, createBody, false)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, tc.method+" "+tc.path)
	}

	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/blogs", "", false).Code)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/blogs/summary", "", false).Code)
}

/*
TestHTTP_ValidationEnvelope verifies the 400 envelope lists the failing fields.
*/
func TestHTTP_ValidationEnvelope(t *testing.T) {
	a := newAPI()

	recorder := a.do(t, http.MethodPost, "/api/blogs", `{"title":"only"}`, true)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	envelope := decode[respond.ErrorEnvelope](t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	assert.Len(t, envelope.Details, 3)
}

/*
TestHTTP_GetMissing verifies the 404 body for an unknown ID.
*/
func TestHTTP_GetMissing(t *testing.T) {
	a := newAPI()

	recorder := a.do(t, http.MethodGet, "/api/blogs/"+uuid.New(), "", false)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Blog not found", decode[respond.ErrorEnvelope](t, recorder).Error)
}

/*
TestHTTP_SetStatus verifies publishing, the 422 message and malformed bodies.
*/
func TestHTTP_SetStatus(t *testing.T) {
	a := newAPI()
	created := decode[blogJSON](t, a.do(t, http.MethodPost, "/api/blogs", createBody, true))
	path := "/api/blogs/" + created.ID + "/status"

	bogus := a.do(t, http.MethodPut, path, `{"status":"BOGUS"}`, true)
	require.Equal(t, http.StatusUnprocessableEntity, bogus.Code)
	assert.Equal(t, "Status must be one of: DRAFT, PUBLISHED", decode[respond.ErrorEnvelope](t, bogus).Error)

	malformed := a.do(t, http.MethodPut, path, `{"status":`, true)
	require.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Equal(t, "Invalid JSON body.", decode[respond.ErrorEnvelope](t, malformed).Error)

	published := a.do(t, http.MethodPut, path, `{"status":"PUBLISHED"}`, true)
	require.Equal(t, http.StatusOK, published.Code)
	body := decode[blogJSON](t, published)
	assert.Equal(t, "PUBLISHED", body.Status)
	assert.NotNil(t, body.PublishedAt)

	drafted := decode[blogJSON](t, a.do(t, http.MethodPut, path, `{"status":"DRAFT"}`, true))
	assert.Nil(t, drafted.PublishedAt)
}

/*
TestHTTP_UpdateAndDelete verifies the PATCH tag semantics and the delete status codes.
*/
func TestHTTP_UpdateAndDelete(t *testing.T) {
	a := newAPI()
	created := decode[blogJSON](t, a.do(t, http.MethodPost, "/api/blogs", createBody, true))
	path := "/api/blogs/" + created.ID

	patched := a.do(t, http.MethodPatch, path, `{"title":"New","description":"d","content":"c","tags":[]}`, true)
	require.Equal(t, http.StatusOK, patched.Code)
	body := decode[blogJSON](t, patched)
	assert.Equal(t, "New", body.Title)
	assert.Empty(t, body.Tags)
	assert.Contains(t, patched.Body.String(), `"tags":[]`)

	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, path, "", true).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodDelete, path, "", true).Code)

	summary := decode[blog.Summary](t, a.do(t, http.MethodGet, "/api/blogs/summary", "", false))
	assert.Equal(t, int64(0), summary.TotalBlogs)
	assert.Equal(t, int64(2), summary.TotalUniqueTags)
}
