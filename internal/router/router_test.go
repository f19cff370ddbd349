package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pomodoros/docs"
	"pomodoros/internal/auth"
	"pomodoros/internal/config"
	"pomodoros/internal/db"
	"pomodoros/internal/handler"
	"pomodoros/internal/repository"
	"pomodoros/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e, _ := newTestStack(t)
	return e
}

// newTestStack wires the full API on a temporary SQLite file and also returns
// the gateway for direct inspection.
func newTestStack(t *testing.T) (*echo.Echo, *db.Gateway) {
	t.Helper()
	opts := db.Options{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "api.db")}
	gw, err := db.NewGateway(func() (*gorm.DB, error) { return db.Open(opts, zap.NewNop()) }, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gw.DB()))
	t.Cleanup(func() { _ = gw.Close() })

	tokens, err := auth.NewTokenService("test-secret", "HS256", 15*time.Minute)
	require.NoError(t, err)

	users := repository.NewUserRepository(gw)
	categories := repository.NewCategoryRepository(gw)
	projects := repository.NewProjectRepository(gw)
	pomodoros := repository.NewPomodoroRepository(gw)
	folders := repository.NewRecallProjectRepository(gw)
	recalls := repository.NewRecallRepository(gw)
	identity := auth.NewIdentityCache(nil)

	e := echo.New()
	Register(e, Handlers{
		Auth:           handler.NewAuthHandler(service.NewAuthService(users, tokens, nil), false, 15*time.Minute),
		Users:          handler.NewUserHandler(service.NewUserService(users, identity)),
		Categories:     handler.NewCategoryHandler(service.NewCategoryService(categories)),
		Projects:       handler.NewProjectHandler(service.NewProjectService(projects, categories, nil)),
		Pomodoros:      handler.NewPomodoroHandler(service.NewPomodoroService(pomodoros, projects, nil)),
		RecallProjects: handler.NewRecallProjectHandler(service.NewRecallProjectService(folders, recalls)),
		Recalls:        handler.NewRecallHandler(service.NewRecallService(recalls, folders)),
	}, Deps{
		Authenticator: auth.NewAuthenticator(tokens, users, identity),
		Ready:         gw.Ping,
		Log:           zap.NewNop(),
	})
	return e, gw
}

type client struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func (cl *client) do(method, path, body string, contentType string) *httptest.ResponseRecorder {
	cl.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if cl.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+cl.token)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	return rec
}

func (cl *client) json(method, path string, body any) *httptest.ResponseRecorder {
	cl.t.Helper()
	payload := ""
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(cl.t, err)
		payload = string(raw)
	}
	return cl.do(method, path, payload, echo.MIMEApplicationJSON)
}

func (cl *client) form(path string, values url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()
	return cl.do(http.MethodPost, path, values.Encode(), echo.MIMEApplicationForm)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signup(cl *client, email string) *httptest.ResponseRecorder {
	return cl.form("/users/signup", url.Values{
		"email":      {email},
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"birth_date": {"1990-05-17"},
		"password":   {"password123"},
	})
}

// login signs up email and returns a client carrying its token.
func login(t *testing.T, e *echo.Echo, email string) *client {
	t.Helper()
	cl := &client{t: t, e: e}
	require.Equal(t, http.StatusCreated, signup(cl, email).Code)

	rec := cl.form("/users/token", url.Values{"username": {email}, "password": {"password123"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decode[handler.TokenResponse](t, rec)
	assert.Equal(t, "bearer", tok.TokenType)
	cl.token = tok.AccessToken
	return cl
}

func TestSignupTwiceConflicts(t *testing.T) {
	cl := &client{t: t, e: newTestServer(t)}

	rec := signup(cl, "ada@example.com")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode[handler.SignupResponse](t, rec).UserID, 36)

	rec = signup(cl, "ada@example.com")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_ALREADY_EXISTS")
}

func TestSignupValidation(t *testing.T) {
	cl := &client{t: t, e: newTestServer(t)}

	rec := cl.form("/users/signup", url.Values{
		"email": {"not-an-email"}, "first_name": {"A"}, "last_name": {"B"}, "password": {"password123"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = cl.form("/users/signup", url.Values{
		"email": {"a@example.com"}, "first_name": {"A"}, "last_name": {"B"}, "password": {"short"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupOverlongPasswordIsValidationError(t *testing.T) {
	cl := &client{t: t, e: newTestServer(t)}

	rec := cl.form("/users/signup", url.Values{
		"email": {"long@example.com"}, "first_name": {"A"}, "last_name": {"B"},
		"password": {strings.Repeat("p", 80)},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[map[string]string](t, rec)["code"])
}

func TestLoginSetsCookieAndRejectsBadPassword(t *testing.T) {
	e := newTestServer(t)
	cl := &client{t: t, e: e}
	require.Equal(t, http.StatusCreated, signup(cl, "ada@example.com").Code)

	rec := cl.form("/users/login", url.Values{"username": {"ada@example.com"}, "password": {"password123"}})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, handler.AccessTokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, strings.HasPrefix(cookies[0].Value, "Bearer "))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(cookies[0])
	me := httptest.NewRecorder()
	e.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	user := decode[handler.UserResponse](t, me)
	assert.Equal(t, "ada@example.com", user.Email)
	require.NotNil(t, user.BirthDate)
	assert.Equal(t, "1990-05-17", *user.BirthDate)

	rec = cl.form("/users/token", url.Values{"username": {"ada@example.com"}, "password": {"wrong-password"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequiresToken(t *testing.T) {
	e := newTestServer(t)
	cl := &client{t: t, e: e}

	rec := cl.json(http.MethodGet, "/categories/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode[map[string]string](t, rec)["code"])

	cl.token = "garbage"
	rec = cl.json(http.MethodGet, "/categories/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBrowserRedirectsToLogin(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/projects/", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestCategoryAndProjectFlow(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "alice@example.com")
	bob := login(t, e, "bob@example.com")

	rec := alice.json(http.MethodPost, "/categories/", map[string]any{"category_name": "Work"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	catID := int64(decode[map[string]any](t, rec)["category_id"].(float64))

	rec = alice.json(http.MethodPost, "/projects/", map[string]any{"category_id": catID, "project_name": "Report"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	projID := int64(decode[map[string]any](t, rec)["project_id"].(float64))

	rec = alice.json(http.MethodGet, "/projects/?category_id="+itoa(catID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Report", list[0]["project_name"])
	assert.Equal(t, "Work", list[0]["category_name"])

	rec = bob.json(http.MethodGet, "/projects/"+itoa(projID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = bob.json(http.MethodGet, "/categories/"+itoa(catID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = bob.json(http.MethodPost, "/projects/", map[string]any{"category_id": catID, "project_name": "Sneaky"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.json(http.MethodPut, "/projects/"+itoa(projID)+"/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decode[map[string]any](t, rec)["end"])

	rec = alice.json(http.MethodGet, "/projects/?status=open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = alice.json(http.MethodDelete, "/categories/"+itoa(catID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["deleted"])

	rec = alice.json(http.MethodGet, "/categories/"+itoa(catID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.json(http.MethodDelete, "/categories/"+itoa(catID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.DeleteResponse](t, rec)
	assert.Zero(t, resp.Deleted)
	assert.Equal(t, "there were no deletions", resp.Detail)
}

func TestPomodoroSatisfactionFlow(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "alice@example.com")

	rec := alice.json(http.MethodPost, "/categories/", map[string]any{"category_name": "Work"})
	require.Equal(t, http.StatusCreated, rec.Code)
	catID := int64(decode[map[string]any](t, rec)["category_id"].(float64))
	rec = alice.json(http.MethodPost, "/projects/", map[string]any{"category_id": catID, "project_name": "Report"})
	require.Equal(t, http.StatusCreated, rec.Code)
	projID := int64(decode[map[string]any](t, rec)["project_id"].(float64))

	rec = alice.json(http.MethodPost, "/pomodoros/", map[string]any{"project_id": projID, "category_id": catID, "duration": 24})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = alice.json(http.MethodPost, "/pomodoros/", map[string]any{"project_id": projID, "category_id": catID, "duration": 25})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "missing", created["pomodoro_satisfaction"])

	rec = alice.json(http.MethodPut, "/pomodoros/", map[string]any{"satisfaction": "meh"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = alice.json(http.MethodPut, "/pomodoros/", map[string]any{"satisfaction": "good"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = alice.json(http.MethodGet, "/pomodoros/?project_id="+itoa(projID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "good", list[0]["pomodoro_satisfaction"])
	assert.Equal(t, float64(25), list[0]["duration"])
	assert.Equal(t, "Report", list[0]["project_name"])

	rec = alice.json(http.MethodDelete, "/pomodoros/9999", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[handler.DeleteResponse](t, rec).Deleted)
}

type storedSatisfaction struct {
	Satisfaction *int64 `gorm:"column:pomodoro_satisfaction"`
}

type storedRecallTitle struct {
	RecallTitle string `gorm:"column:recall_title"`
}

func TestRatingSkipsPomodorosOfDeletedCategories(t *testing.T) {
	e, gw := newTestStack(t)
	alice := login(t, e, "alice@example.com")

	rec := alice.json(http.MethodPost, "/categories/", map[string]any{"category_name": "Work"})
	require.Equal(t, http.StatusCreated, rec.Code)
	catID := int64(decode[map[string]any](t, rec)["category_id"].(float64))
	rec = alice.json(http.MethodPost, "/projects/", map[string]any{"category_id": catID, "project_name": "Report"})
	require.Equal(t, http.StatusCreated, rec.Code)
	projID := int64(decode[map[string]any](t, rec)["project_id"].(float64))
	rec = alice.json(http.MethodPost, "/pomodoros/", map[string]any{"project_id": projID, "category_id": catID, "duration": 25})
	require.Equal(t, http.StatusCreated, rec.Code)
	pomID := int64(decode[map[string]any](t, rec)["pomodoro_id"].(float64))

	require.Equal(t, http.StatusOK, alice.json(http.MethodDelete, "/categories/"+itoa(catID), nil).Code)

	rec = alice.json(http.MethodPut, "/pomodoros/", map[string]any{"satisfaction": "good"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = alice.json(http.MethodPut, "/pomodoros/"+itoa(pomID), map[string]any{"satisfaction": "good"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var stored []storedSatisfaction
	require.NoError(t, gw.Query(context.Background(), &stored,
		"SELECT pomodoro_satisfaction FROM pomodoros WHERE pomodoro_id = ?", pomID))
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Satisfaction, "hidden pomodoro left untouched")
}

func TestRecallUpdateAfterFolderDeleted(t *testing.T) {
	e, gw := newTestStack(t)
	alice := login(t, e, "alice@example.com")

	rec := alice.json(http.MethodPost, "/recall_projects/", map[string]any{"project_name": "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	folderID := int64(decode[map[string]any](t, rec)["recall_project_id"].(float64))
	rec = alice.json(http.MethodPost, "/recalls/", map[string]any{
		"recall_project_id": folderID, "recall_title": "Channels", "recall": "close from the sender",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	recallID := int64(decode[map[string]any](t, rec)["recall_id"].(float64))

	require.Equal(t, http.StatusOK, alice.json(http.MethodDelete, "/recall_projects/"+itoa(folderID), nil).Code)

	rec = alice.json(http.MethodPut, "/recalls/"+itoa(recallID), map[string]any{"recall_title": "Edited", "recall": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var stored []storedRecallTitle
	require.NoError(t, gw.Query(context.Background(), &stored,
		"SELECT recall_title FROM recalls WHERE recall_id = ?", recallID))
	require.Len(t, stored, 1)
	assert.Equal(t, "Channels", stored[0].RecallTitle)
}

func TestRecallFlow(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "alice@example.com")

	rec := alice.json(http.MethodPost, "/recall_projects/", map[string]any{"project_name": "Go"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	folderID := int64(decode[map[string]any](t, rec)["recall_project_id"].(float64))

	rec = alice.json(http.MethodPost, "/recall_projects/", map[string]any{"project_name": "Go"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = alice.json(http.MethodPost, "/recalls/", map[string]any{
		"recall_project_id": folderID, "recall_title": strings.Repeat("x", 256), "recall": "too long",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = alice.json(http.MethodPost, "/recalls/", map[string]any{
		"recall_project_id": folderID, "recall_title": "Channels", "recall": "close from the sender",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Go", decode[map[string]any](t, rec)["project_name"])

	rec = alice.json(http.MethodGet, "/recalls/?recall_project_id="+itoa(folderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = alice.json(http.MethodDelete, "/recall_projects/"+itoa(folderID)+"/recalls", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[handler.DeleteResponse](t, rec).Deleted)
}

func TestDeleteAccountRevokesAccess(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "alice@example.com")

	rec := alice.json(http.MethodDelete, "/users/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = alice.json(http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	e := newTestServer(t)
	cl := &client{t: t, e: e}

	assert.Equal(t, http.StatusOK, cl.json(http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, cl.json(http.MethodGet, "/readyz", nil).Code)

	rec := cl.json(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	e := newTestServer(t)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	operational := map[string]bool{"/healthz": true, "/readyz": true, "/metrics": true, "/swagger/*": true}
	checked := 0
	for _, r := range e.Routes() {
		if operational[r.Path] || strings.HasSuffix(r.Path, "*") || r.Method == echo.RouteNotFound {
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		_, ok := doc.Paths[path][strings.ToLower(r.Method)]
		assert.True(t, ok, "%s %s is not documented", r.Method, path)
		checked++
	}
	assert.Equal(t, 37, checked)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
