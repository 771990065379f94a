package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradebook/internal/config"
)

func newTestApp(t *testing.T, seed bool) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Database.BusyTimeout = 5
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "30m"
	cfg.JWT.Issuer = "gradebook"
	cfg.Auth.BcryptCost = 4
	cfg.Seed.Enabled = seed

	ctx := context.Background()
	lgr := zerolog.Nop()

	database, err := SetupDatabase(ctx, cfg, lgr)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	deps, err := BuildDependencies(ctx, cfg, database, lgr)
	require.NoError(t, err)

	return SetupRouter(cfg, deps, lgr)
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]any](t, w)
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return detail["message"].(string)
}

func TestEndToEnd(t *testing.T) {
	app := newTestApp(t, false)

	// register
	w := do(t, app, http.MethodPost, "/users", `{"username":"alice","email":"a@x.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[map[string]any](t, w)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, true, user["is_active"])
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate registration
	w = do(t, app, http.MethodPost, "/users", `{"username":"alice","email":"other@x.com","password":"pw"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already registered", errorMessage(t, w))

	w = do(t, app, http.MethodPost, "/users", `{"username":"alice2","email":"a@x.com","password":"pw"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", errorMessage(t, w))

	// login
	w = login(t, app, "alice", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect username or password", errorMessage(t, w))

	w = login(t, app, "alice", "pw123")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok := decode[map[string]string](t, w)
	assert.Equal(t, "bearer", tok["token_type"])
	token := tok["access_token"]
	require.NotEmpty(t, token)

	// protected without token
	w = do(t, app, http.MethodGet, "/students", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Could not validate credentials", errorMessage(t, w))

	// student
	w = do(t, app, http.MethodPost, "/students", `{"name":"Sam","student_id":"STU100"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	student := decode[map[string]any](t, w)
	id := int64(student["id"].(float64))
	assert.Equal(t, "STU100", student["student_id"])

	w = do(t, app, http.MethodPost, "/students", `{"name":"Sam again","student_id":"STU100"}`, token)
	require.Equal(t, http.StatusConflict, w.Code)

	// grade
	gradesPath := "/students/" + jsonInt(id) + "/grades"
	w = do(t, app, http.MethodPost, gradesPath, `{"subject":"Math","score":91.0}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, app, http.MethodGet, gradesPath, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	grades := decode[[]map[string]any](t, w)
	require.Len(t, grades, 1)
	assert.Equal(t, "Math", grades[0]["subject"])
	assert.Equal(t, 91.0, grades[0]["score"])
	assert.EqualValues(t, id, grades[0]["student_id"])

	// missing student
	w = do(t, app, http.MethodGet, "/students/9999", "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", errorMessage(t, w))

	w = do(t, app, http.MethodPost, "/students/9999/grades", `{"subject":"Math","score":50}`, token)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, app, http.MethodGet, "/students/9999/grades", "", token)
	require.Equal(t, http.StatusNotFound, w.Code)

	// invalid id
	w = do(t, app, http.MethodGet, "/students/abc", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndToEnd_JSONLoginAndPaging(t *testing.T) {
	app := newTestApp(t, true)

	w := do(t, app, http.MethodPost, "/token", `{"username":"testuser","password":"testpass123"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[map[string]string](t, w)["access_token"]

	w = do(t, app, http.MethodGet, "/students", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	students := decode[[]map[string]any](t, w)
	require.Len(t, students, 3)
	assert.Equal(t, "STU001", students[0]["student_id"])

	w = do(t, app, http.MethodGet, "/students?skip=1&limit=1", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[[]map[string]any](t, w)
	require.Len(t, page, 1)
	assert.Equal(t, "Jane Smith", page[0]["name"])

	w = do(t, app, http.MethodGet, "/students?skip=-1", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, app, http.MethodGet, "/students/1/grades", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 3)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, false)

	w := do(t, app, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBadRequestBodies(t *testing.T) {
	app := newTestApp(t, false)

	w := do(t, app, http.MethodPost, "/users", `{"username":"bob","email":"not-an-email","password":"pw"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, app, http.MethodPost, "/users", `{`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = login(t, app, "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
