package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	httpapi "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/logging"
	"github.com/devfolio/portfolio-api/internal/projects/domain"
	"github.com/devfolio/portfolio-api/internal/projects/repository"
	"github.com/devfolio/portfolio-api/internal/projects/service"
)

type testServer struct {
	router *gin.Engine
	path   string
	logs   *observer.ObservedLogs
}

func setupTestServer(t *testing.T, opts ...service.Option) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "projects.json")
	doc := repository.NewFileDocument(path)
	require.NoError(t, doc.Init(context.Background()))

	opts = append([]service.Option{
		service.WithClock(func() time.Time { return time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC) }),
	}, opts...)
	svc := service.NewProjectService(repository.NewDocumentStore(doc), opts...)

	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(httpapi.MethodNotAllowed(httpapi.AllowedMethods{"/api/projects": Methods}))
	New(svc, logging.NewFromZap(zap.New(core))).Register(router.Group("/api/projects"))

	return &testServer{router: router, path: path, logs: logs}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

type listBody struct {
	Projects []domain.Project `json:"projects"`
}

type projectBody struct {
	Project domain.Project `json:"project"`
}

type messageBody struct {
	Message string `json:"message"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestProjectsAPI_Scenario(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/api/projects", map[string]any{
		"title":           "X",
		"description":     "d",
		"fullDescription": "fd",
		"category":        "AI Engineer",
		"techStack":       []string{"Python"},
		"impact":          []string{"i"},
		"featured":        false,
		"published":       true,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[projectBody](t, rr).Project
	assert.Len(t, created.ID, 9)
	assert.Equal(t, "2024-07-04", created.CreatedAt.String())
	assert.Equal(t, "2024-07-04", created.UpdatedAt.String())

	rr = s.do(t, http.MethodGet, "/api/projects?category="+url.QueryEscape("AI Engineer"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []domain.Project{created}, decode[listBody](t, rr).Projects)

	rr = s.do(t, http.MethodGet, "/api/projects?technology=python", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []domain.Project{created}, decode[listBody](t, rr).Projects)

	rr = s.do(t, http.MethodDelete, "/api/projects?id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Project deleted successfully", decode[messageBody](t, rr).Message)

	rr = s.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"projects": []}`, rr.Body.String())

	assert.Equal(t, 1, s.logs.FilterMessage("project created").Len())
	assert.Equal(t, 1, s.logs.FilterMessage("project deleted").Len())
}

func TestProjectsAPI_ListPublishedParam(t *testing.T) {
	s := setupTestServer(t)
	for _, published := range []bool{true, false} {
		rr := s.do(t, http.MethodPost, "/api/projects", domain.NewProject{Title: "p", Published: published})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	cases := map[string]int{
		"/api/projects":                 1,
		"/api/projects?published=true":  1,
		"/api/projects?published=false": 2,
		"/api/projects?published=no":    1,
		"/api/projects?published=FALSE": 1,
		"/api/projects?category=all":    1,
	}
	for target, want := range cases {
		rr := s.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[listBody](t, rr).Projects, want, target)
	}
}

func TestProjectsAPI_Update(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/api/projects", domain.NewProject{Title: "Old", TechStack: []string{"Go"}, Published: true})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[projectBody](t, rr).Project

	t.Run("merges fields", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/projects?id="+created.ID, map[string]any{"title": "New", "featured": true})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		p := decode[projectBody](t, rr).Project
		assert.Equal(t, "New", p.Title)
		assert.True(t, p.Featured)
		assert.Equal(t, []string{"Go"}, p.TechStack)
	})

	t.Run("protected fields are ignored", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/projects?id="+created.ID, map[string]any{
			"id":        "hijacked1",
			"createdAt": "1999-01-01",
			"updatedAt": "1999-01-01",
			"title":     "Still mine",
		})
		require.Equal(t, http.StatusOK, rr.Code)
		p := decode[projectBody](t, rr).Project
		assert.Equal(t, created.ID, p.ID)
		assert.Equal(t, created.CreatedAt, p.CreatedAt)
		assert.Equal(t, "2024-07-04", p.UpdatedAt.String())
		assert.Equal(t, "Still mine", p.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/projects?id=nope", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Project not found", decode[messageBody](t, rr).Message)
	})

	t.Run("missing id", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/projects", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/projects?id="+created.ID, "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request body", decode[messageBody](t, rr).Message)
	})
}

func TestProjectsAPI_StrictUpdateRejectsInvalidRecord(t *testing.T) {
	s := setupTestServer(t, service.WithStrictValidation(true))
	rr := s.do(t, http.MethodPost, "/api/projects", domain.NewProject{Title: "Ok", Category: domain.CategoryAI})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[projectBody](t, rr).Project

	rr = s.do(t, http.MethodPut, "/api/projects?id="+created.ID, map[string]any{"category": "Chef"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[messageBody](t, rr).Message, "unknown category")
}

func TestProjectsAPI_LooseDatesInDocument(t *testing.T) {
	s := setupTestServer(t)
	doc := `{"projects": [
		{"id": "a", "title": "A", "published": true, "createdAt": "2024-1-5", "updatedAt": "2024-1-5"},
		{"id": "b", "title": "B", "published": true, "createdAt": "2024-01-05", "updatedAt": "2024-01-05"}
	]}`
	require.NoError(t, os.WriteFile(s.path, []byte(doc), 0o644))

	rr := s.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	projects := decode[listBody](t, rr).Projects
	require.Len(t, projects, 2)
	assert.Equal(t, "2024-01-05", projects[0].CreatedAt.String())
}

func TestProjectsAPI_CreateBadRequests(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/api/projects", "{")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/projects", `{"techStack": "Go"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	strict := setupTestServer(t, service.WithStrictValidation(true))
	rr = strict.do(t, http.MethodPost, "/api/projects", domain.NewProject{Category: "Chef"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[messageBody](t, rr).Message, "unknown category")
}

func TestProjectsAPI_DeleteUnknown(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/api/projects", domain.NewProject{Title: "keep"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodDelete, "/api/projects?id=nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/projects?published=false", nil)
	assert.Len(t, decode[listBody](t, rr).Projects, 1)
}

func TestProjectsAPI_CorruptStore(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, os.WriteFile(s.path, []byte(`{"items": []}`), 0o644))

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		rr := s.do(t, method, "/api/projects?id=x", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusInternalServerError, rr.Code, method)
		assert.Equal(t, httpapi.GenericErrorMessage, decode[messageBody](t, rr).Message)
		assert.NotContains(t, rr.Body.String(), "corrupt")
	}

	failures := s.logs.FilterMessage("request failed").All()
	require.Len(t, failures, 4)
	assert.Contains(t, failures[0].ContextMap()["error"], "corrupt")
}

func TestProjectsAPI_MethodNotAllowed(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPatch, "/api/projects", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE", rr.Header().Get("Allow"))
}
