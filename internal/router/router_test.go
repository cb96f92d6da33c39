package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/mail"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

const (
	adminEmail    = "ada@example.com"
	adminPassword = "correct horse"
)

type sentMessage struct {
	subject string
	body    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(ctx context.Context, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{subject: subject, body: body})
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type testApp struct {
	e      *echo.Echo
	db     *gorm.DB
	sender *fakeSender
}

func newTestApp(t *testing.T, contactRate float64) *testApp {
	t.Helper()

	gormDB, err := db.Open("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cacheClient.Close() })

	cfg := &config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour, ContactRate: contactRate}
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, false)
	tokens := auth.NewTokenStore(cacheClient)

	userRepo := repository.NewUserRepository(gormDB)
	projectService := service.NewProjectService(repository.NewProjectRepository(gormDB))
	sender := &fakeSender{}

	e := echo.New()
	require.NoError(t, Register(
		e,
		cfg,
		sessions,
		userRepo,
		tokens,
		handler.NewAuthHandler(service.NewAuthService(userRepo, auth.PasswordHasher{Iterations: 1000}, sessions, tokens), sessions),
		handler.NewProjectHandler(projectService),
		handler.NewProfileHandler(service.NewProfileService(repository.NewProfileRepository(gormDB))),
		handler.NewContactHandler(service.NewContactService(sender)),
		handler.NewAPIHandler(projectService),
	))

	return &testApp{e: e, db: gormDB, sender: sender}
}

// do sends a request carrying a valid CSRF token pair.
func (a *testApp) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	req.AddCookie(&http.Cookie{Name: csrfCookie, Value: "tok"})
	req.Header.Set(echo.HeaderXCSRFToken, "tok")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) register(t *testing.T) {
	t.Helper()
	rec := a.do(http.MethodPost, "/register", url.Values{
		"name":     {"Ada"},
		"email":    {adminEmail},
		"password": {adminPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
}

func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	a.register(t)
	rec := a.do(http.MethodPost, "/login", url.Values{"email": {adminEmail}, "password": {adminPassword}})
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	return cookie
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookie && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func projectValues(name string) url.Values {
	return url.Values{
		"project_title":       {name},
		"project_github_url":  {"https://github.com/example/bot"},
		"project_website_url": {""},
		"project_image_url":   {"https://example.com/bot.gif"},
		"project_summary":     {"<p>Automates swiping.</p>"},
	}
}

func count(t *testing.T, gormDB *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gormDB.Model(m).Count(&n).Error)
	return n
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, 100)
	rec := app.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGatedRoutes_RequireSession(t *testing.T) {
	app := newTestApp(t, 100)
	require.NoError(t, app.db.Create(&model.ProjectPost{ProjectName: "Existing", Summary: "s", GithubURL: "g", ImageURL: "i"}).Error)

	tests := []struct {
		method string
		target string
		form   url.Values
	}{
		{http.MethodGet, "/logout", nil},
		{http.MethodGet, "/post-project", nil},
		{http.MethodPost, "/post-project", projectValues("Sneaky")},
		{http.MethodGet, "/edit-project/1", nil},
		{http.MethodPost, "/edit-project/1", projectValues("Renamed")},
		{http.MethodGet, "/delete/1", nil},
		{http.MethodPost, "/delete/1", url.Values{}},
		{http.MethodGet, "/edit-profile", nil},
		{http.MethodPost, "/edit-profile", url.Values{"profile_img_url": {"https://example.com/me.png"}, "intro_of_admin": {"hi"}}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := app.do(tt.method, tt.target, tt.form)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}

	var project model.ProjectPost
	require.NoError(t, app.db.First(&project, 1).Error)
	assert.Equal(t, "Existing", project.ProjectName)
	assert.Equal(t, int64(1), count(t, app.db, &model.ProjectPost{}))
	assert.Equal(t, int64(0), count(t, app.db, &model.Profile{}))
}

func TestRegister_OnlyOneAdmin(t *testing.T) {
	app := newTestApp(t, 100)
	app.register(t)

	var user model.User
	require.NoError(t, app.db.First(&user).Error)
	assert.NotEqual(t, adminPassword, user.PasswordHash)
	assert.True(t, auth.VerifyPassword(user.PasswordHash, adminPassword))

	rec := app.do(http.MethodPost, "/register", url.Values{
		"name":     {"Mallory"},
		"email":    {"mallory@example.com"},
		"password": {"other"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "only one user allowed")
	assert.Equal(t, int64(1), count(t, app.db, &model.User{}))
}

func TestRegisterPage_ShowsRejectionOnceProvisioned(t *testing.T) {
	app := newTestApp(t, 100)

	rec := app.do(http.MethodGet, "/register", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "only one user allowed")

	app.register(t)
	rec = app.do(http.MethodGet, "/register", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "only one user allowed")
}

func TestRegister_ValidationError(t *testing.T) {
	app := newTestApp(t, 100)
	rec := app.do(http.MethodPost, "/register", url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "password": {"pw"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email address.")
	assert.Equal(t, int64(0), count(t, app.db, &model.User{}))
}

func TestLogin_WrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		register bool
	}{
		{name: "wrong password", register: true},
		{name: "no admin yet", register: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, 100)
			if tt.register {
				app.register(t)
			}
			rec := app.do(http.MethodPost, "/login", url.Values{"email": {adminEmail}, "password": {"wrong"}})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Password is incorrect")
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestLogin_ShowsAdminNavigation(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	rec := app.do(http.MethodGet, "/", nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/logout"`)
}

func TestAuditLines_LoggedAtInfo(t *testing.T) {
	app := newTestApp(t, 100)
	var buf bytes.Buffer
	app.e.Logger.SetOutput(&buf)

	session := app.login(t)
	require.Equal(t, http.StatusFound, app.do(http.MethodPost, "/post-project", projectValues("Tinder Bot"), session).Code)
	require.Equal(t, http.StatusFound, app.do(http.MethodGet, "/logout", nil, session).Code)

	out := buf.String()
	for _, want := range []string{"registered", "logged in", "project 1 created", "logged out"} {
		assert.Contains(t, out, want)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Lvl
	}{
		{"", log.INFO},
		{"info", log.INFO},
		{"DEBUG", log.DEBUG},
		{"warn", log.WARN},
		{"error", log.ERROR},
		{"off", log.OFF},
		{"verbose", log.INFO},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logLevel(tt.in), tt.in)
	}
}

func TestProjectCRUD(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	rec := app.do(http.MethodPost, "/post-project", projectValues("Tinder Bot"), session)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, "/project", rec.Header().Get(echo.HeaderLocation))

	var project model.ProjectPost
	require.NoError(t, app.db.Where("project_name = ?", "Tinder Bot").First(&project).Error)
	detail := "/project-element/" + itoa(project.ID)

	rec = app.do(http.MethodGet, "/project", nil)
	assert.Contains(t, rec.Body.String(), "Tinder Bot")

	rec = app.do(http.MethodGet, detail, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Automates swiping.")

	rec = app.do(http.MethodGet, "/edit-project/"+itoa(project.ID), nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Tinder Bot"`)

	updated := projectValues("Tinder Bot v2")
	updated.Set("project_website_url", "https://bot.example.com")
	rec = app.do(http.MethodPost, "/edit-project/"+itoa(project.ID), updated, session)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, detail, rec.Header().Get(echo.HeaderLocation))

	rec = app.do(http.MethodGet, detail, nil)
	assert.Contains(t, rec.Body.String(), "Tinder Bot v2")
	assert.Contains(t, rec.Body.String(), `href="https://bot.example.com"`)

	rec = app.do(http.MethodGet, "/delete/"+itoa(project.ID), nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), count(t, app.db, &model.ProjectPost{}))

	rec = app.do(http.MethodPost, "/delete/"+itoa(project.ID), url.Values{}, session)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/project", rec.Header().Get(echo.HeaderLocation))

	rec = app.do(http.MethodGet, detail, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-status="404"`)
}

func TestProject_DuplicateName(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	rec := app.do(http.MethodPost, "/post-project", projectValues("Tinder Bot"), session)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = app.do(http.MethodPost, "/post-project", projectValues("Tinder Bot"), session)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A project with this name already exists.")
	assert.Equal(t, int64(1), count(t, app.db, &model.ProjectPost{}))
}

func TestProject_InvalidForm(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	values := projectValues("Tinder Bot")
	values.Set("project_github_url", "not a url")
	rec := app.do(http.MethodPost, "/post-project", values, session)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL.")
	assert.Equal(t, int64(0), count(t, app.db, &model.ProjectPost{}))
}

func TestProject_NotFound(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	for _, target := range []string{"/project-element/99", "/project-element/abc", "/edit-project/99", "/delete/99"} {
		rec := app.do(http.MethodGet, target, nil, session)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
	rec := app.do(http.MethodPost, "/delete/99", url.Values{}, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile_Upsert(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	values := url.Values{
		"profile_img_url": {"https://example.com/me.png"},
		"welcome_title":   {"Hi, I'm Ada"},
		"intro_of_admin":  {"<p>I build things.</p>"},
	}
	for i := 0; i < 2; i++ {
		rec := app.do(http.MethodPost, "/edit-profile", values, session)
		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	}
	assert.Equal(t, int64(1), count(t, app.db, &model.Profile{}))

	rec := app.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "I build things.")

	rec = app.do(http.MethodGet, "/edit-profile", nil, session)
	assert.Contains(t, rec.Body.String(), `value="https://example.com/me.png"`)
}

func TestContact_SendsOneMessage(t *testing.T) {
	app := newTestApp(t, 100)

	rec := app.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Jane"},
		"email":   {"jane@x.com"},
		"phone":   {"5551234"},
		"message": {"Hi"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-msg-sent="true"`)
	require.Equal(t, 1, app.sender.count())
	assert.Equal(t, service.ContactSubject, app.sender.sent[0].subject)
	for _, want := range []string{"Jane", "jane@x.com", "5551234", "Hi"} {
		assert.Contains(t, app.sender.sent[0].body, want)
	}
}

func TestContact_InvalidForm(t *testing.T) {
	app := newTestApp(t, 100)

	rec := app.do(http.MethodPost, "/contact", url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "phone": {"call me"}, "message": {"Hi"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-msg-sent="false"`)
	assert.Equal(t, 0, app.sender.count())
}

func TestContact_TransportFailure(t *testing.T) {
	app := newTestApp(t, 100)
	app.sender.err = errors.Join(mail.ErrTransport, errors.New("connection refused"))

	rec := app.do(http.MethodPost, "/contact", url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "phone": {"5551234"}, "message": {"Hi"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContact_RateLimited(t *testing.T) {
	app := newTestApp(t, 0.001)
	values := url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "phone": {"5551234"}, "message": {"Hi"}}

	for i := 0; i < contactBurst; i++ {
		require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/contact", values).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, app.do(http.MethodPost, "/contact", values).Code)
	assert.Equal(t, contactBurst, app.sender.count())
}

func TestCSRF_RequiredOnPost(t *testing.T) {
	app := newTestApp(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=Jane"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, rec.Code)
	assert.Equal(t, 0, app.sender.count())
}

func TestLogout_RevokesSession(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)

	rec := app.do(http.MethodGet, "/logout", nil, session)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = app.do(http.MethodGet, "/post-project", nil, session)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIdentity_MissingUser(t *testing.T) {
	app := newTestApp(t, 100)
	session := app.login(t)
	require.NoError(t, app.db.Where("1 = 1").Delete(&model.User{}).Error)

	rec := app.do(http.MethodGet, "/", nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdentity_TamperedCookieIsAnonymous(t *testing.T) {
	app := newTestApp(t, 100)
	rec := app.do(http.MethodGet, "/post-project", nil, &http.Cookie{Name: auth.SessionCookie, Value: "not-a-token"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_Projects(t *testing.T) {
	app := newTestApp(t, 100)
	require.NoError(t, app.db.Create(&model.ProjectPost{ProjectName: "Tinder Bot", Summary: "s", GithubURL: "g", ImageURL: "i"}).Error)

	rec := app.do(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list handler.ProjectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Tinder Bot", list.Projects[0].ProjectName)

	rec = app.do(http.MethodGet, "/api/projects/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, strings.Split(rec.Header().Get(echo.HeaderContentType), ";")[0])
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, 100)
	rec := app.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-status="404"`)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
