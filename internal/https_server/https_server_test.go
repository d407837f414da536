package https_server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"groupies/internal/config"
	"groupies/internal/dao/db/repository"
	"groupies/internal/handler"
	"groupies/internal/infrastructure/menu"
	"groupies/internal/model"
	"groupies/internal/service"
	"groupies/internal/testkit"
	"groupies/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const eventName = "BBQ Nation 7@777 (Group of 7)"

type app struct {
	engine *gin.Engine
	db     *gorm.DB
	sender *testkit.Sender
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.InitTrans("en"))

	conf := &config.Config{
		MainConfig:      config.MainConfig{Mode: gin.TestMode},
		StaticSrcConfig: config.StaticSrcConfig{StaticPath: "../../static", MenuPath: "../../static/menu_777.json"},
		SessionConfig:   config.SessionConfig{CookieName: "groupies_session", MaxAgeHours: 1},
		EventConfig:     config.EventConfig{DefaultName: eventName, MembersNeeded: 7},
	}

	gdb := testkit.NewDB(t)
	repos := repository.NewRepositories(gdb)
	sender := &testkit.Sender{}
	svc := service.NewServices(repos, testkit.NewCache(t), sender, jwt.NewSigner("test-secret", time.Hour), conf.EventConfig)
	_, err := svc.Event.SeedDefault()
	require.NoError(t, err)

	handlers := handler.NewHandlers(svc, menu.FileLoader(conf.StaticSrcConfig.MenuPath), conf.SessionConfig)
	engine, err := Init(conf, handlers, svc.Auth)
	require.NoError(t, err)
	return &app{engine: engine, db: gdb, sender: sender}
}

// browser 在请求间保存 Cookie，不自动跟随跳转
type browser struct {
	t       *testing.T
	app     *app
	cookies map[string]string
}

func (a *app) browser(t *testing.T) *browser {
	return &browser{t: t, app: a, cookies: map[string]string{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	b.app.engine.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
}

func (b *browser) signupAndLogin(username string) {
	b.t.Helper()
	form := url.Values{"username": {username}, "password": {"pw"}}
	assertRedirect(b.t, b.post("/signup", form), "/login")
	assertRedirect(b.t, b.post("/login", form), "/")
	require.Contains(b.t, b.cookies, "groupies_session")
}

func TestHealthz(t *testing.T) {
	w := newApp(t).browser(t).get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestLoginRequired(t *testing.T) {
	b := newApp(t).browser(t)
	assertRedirect(t, b.get("/"), "/login")
	assertRedirect(t, b.get("/join/1"), "/login")
}

func TestSignupFlow(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)

	assertRedirect(t, b.post("/signup", url.Values{"username": {"  "}, "password": {"pw"}}), "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "Username and password are required.")

	assertRedirect(t, b.post("/signup", url.Values{"username": {" alice "}, "password": {"pw"}}), "/login")
	page := b.get("/login").Body.String()
	assert.Contains(t, page, "Account created. Please log in.")
	assert.Equal(t, []string{"🎉 New signup: alice"}, a.sender.Messages())

	// 提示只展示一次
	assert.NotContains(t, b.get("/login").Body.String(), "Account created")

	assertRedirect(t, b.post("/signup", url.Values{"username": {"alice"}, "password": {"other"}}), "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "User already exists!")

	assertRedirect(t, b.post("/signup", url.Values{"username": {strings.Repeat("x", 51)}, "password": {"pw"}}), "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "username must be a maximum of 50 characters in length")
}

func TestSignupMultibytePassword(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)

	// 30 个字符通过表单校验，但有 90 字节
	rec := b.post("/signup", url.Values{"username": {"wang"}, "password": {strings.Repeat("密", 30)}})
	assertRedirect(t, rec, "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "Password must be at most 72 bytes.")
	assert.Empty(t, a.sender.Messages())

	assertRedirect(t, b.post("/signup", url.Values{"username": {"wang"}, "password": {strings.Repeat("密", 24)}}), "/login")
	assertRedirect(t, b.post("/login", url.Values{"username": {"wang"}, "password": {strings.Repeat("密", 24)}}), "/")
}

func TestLoginFlow(t *testing.T) {
	b := newApp(t).browser(t)
	assertRedirect(t, b.post("/signup", url.Values{"username": {"bob"}, "password": {"Secret"}}), "/login")

	for _, form := range []url.Values{
		{"username": {"bob"}, "password": {"secret"}},
		{"username": {"nobody"}, "password": {"Secret"}},
	} {
		assertRedirect(t, b.post("/login", form), "/login")
		assert.Contains(t, b.get("/login").Body.String(), "Invalid username or password")
	}

	assertRedirect(t, b.post("/login", url.Values{"username": {" bob"}, "password": {"Secret"}}), "/")
	home := b.get("/")
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Hi, bob!")
	assert.Contains(t, home.Body.String(), eventName)
	assert.Contains(t, home.Body.String(), "Included in the 7@777 Buffet")
	assert.Contains(t, home.Body.String(), "Live Grill Starters")
}

func TestLogoutRevokesSession(t *testing.T) {
	b := newApp(t).browser(t)
	b.signupAndLogin("carol")
	stolen := b.cookies["groupies_session"]

	assertRedirect(t, b.get("/logout"), "/login")
	assert.NotContains(t, b.cookies, "groupies_session")
	assert.Contains(t, b.get("/login").Body.String(), "Logged out.")

	// 重放登出前的 Cookie
	b.cookies["groupies_session"] = stolen
	assertRedirect(t, b.get("/"), "/login")
}

func TestHomeWithDeletedUser(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)
	b.signupAndLogin("ghost")
	require.NoError(t, a.db.Where("username = ?", "ghost").Delete(&model.UserInfo{}).Error)

	assertRedirect(t, b.get("/"), "/logout")
	assertRedirect(t, b.get("/logout"), "/login")
	assert.NotContains(t, b.cookies, "groupies_session")
	assertRedirect(t, b.get("/"), "/login")
}

func TestEventDetail(t *testing.T) {
	b := newApp(t).browser(t)

	w := b.get("/event/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 / 7 joined")

	for _, path := range []string{"/event/999", "/event/abc", "/event/0", "/nowhere"} {
		assert.Equal(t, http.StatusNotFound, b.get(path).Code, path)
	}
}

func TestJoinFlow(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)
	b.signupAndLogin("dave")

	assertRedirect(t, b.get("/join/1"), "/event/1")
	page := b.get("/event/1").Body.String()
	assert.Contains(t, page, "1 / 7 joined")
	assert.Contains(t, page, "You're in this group.")

	// 重复报名不改变人数
	assertRedirect(t, b.get("/join/1"), "/event/1")
	assert.Contains(t, b.get("/event/1").Body.String(), "1 / 7 joined")

	assert.Equal(t, http.StatusNotFound, b.get("/join/999").Code)
}

func TestGroupCompletesAtCapacity(t *testing.T) {
	a := newApp(t)

	var last *browser
	for i := 1; i <= 7; i++ {
		last = a.browser(t)
		last.signupAndLogin(fmt.Sprintf("diner%d", i))
		assertRedirect(t, last.get("/join/1"), "/event/1")
	}
	page := last.get("/event/1").Body.String()
	assert.Contains(t, page, "Group is full! See your Telegram (if connected) for updates.")
	assert.Contains(t, page, "This group is full.")
	assert.Contains(t, a.sender.Messages(), "✅ Group for "+eventName+" is now FULL (7 members)")

	late := a.browser(t)
	late.signupAndLogin("late")
	assertRedirect(t, late.get("/join/1"), "/event/1")
	assert.Contains(t, late.get("/event/1").Body.String(), "This group is already full.")
}

func TestMetricsEndpoint(t *testing.T) {
	b := newApp(t).browser(t)
	b.signupAndLogin("erin")

	w := b.get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "groupies_signups_total")
	assert.Contains(t, w.Body.String(), "groupies_http_request_duration_seconds")
}

func TestStaticAssets(t *testing.T) {
	w := newApp(t).browser(t).get("/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
}
