package controller

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"

	"regstats/database"
	"regstats/logger"
	"regstats/web/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

// Stripped-down templates so assertions can parse the rendered values.
const testTemplates = `{{define "index.html"}}home{{end}}
{{define "register.html"}}csrf={{.csrf_token}};error={{.error}}{{end}}
{{define "login.html"}}csrf={{.csrf_token}};error={{.error}};message={{.message}}{{end}}
{{define "statistics.html"}}total={{.total}};roles={{range .roles}}{{.Role}}:{{.Count}};{{end}}chart={{.chart}}{{end}}`

var csrfPattern = regexp.MustCompile(`csrf=([0-9A-Za-z]+)`)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	database.CloseDB()
	os.Remove("test.db")
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("regstats", store))
	engine.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))

	g := engine.Group("/")
	NewIndexController(g)
	NewLoginController(g)
	NewRegisterController(g)
	NewStatsController(g)
	return engine
}

// browser replays session cookies between requests like a real client.
type browser struct {
	engine  *gin.Engine
	cookies []*http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	// One response may carry several Set-Cookie headers for the same
	// session; a browser keeps only the last one per name.
	for _, ck := range w.Result().Cookies() {
		replaced := false
		for i, old := range b.cookies {
			if old.Name == ck.Name {
				b.cookies[i] = ck
				replaced = true
				break
			}
		}
		if !replaced {
			b.cookies = append(b.cookies, ck)
		}
	}
	return w
}

func (b *browser) fetchToken(t *testing.T, path string) string {
	w := b.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	m := csrfPattern.FindStringSubmatch(w.Body.String())
	if len(m) != 2 {
		t.Fatalf("no csrf token in %q", w.Body.String())
	}
	return m[1]
}

func (b *browser) register(t *testing.T, name, email, role string) *httptest.ResponseRecorder {
	token := b.fetchToken(t, "/register")
	return b.do(http.MethodPost, "/register", url.Values{
		"name":       {name},
		"email":      {email},
		"role":       {role},
		"csrf_token": {token},
	})
}

func TestCsrfTokenValidatesOnce(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	token := b.fetchToken(t, "/login")

	form := url.Values{
		"name":       {"Nobody"},
		"email":      {"nobody@example.com"},
		"csrf_token": {token},
	}

	// First submission consumes the token: CSRF passes, lookup misses.
	w := b.do(http.MethodPost, "/login", form)
	assert.Contains(t, w.Body.String(), "User not found")

	// Replaying the same token must fail.
	w = b.do(http.MethodPost, "/login", form)
	assert.Contains(t, w.Body.String(), "Invalid request.")
}

func TestCsrfMismatchRejected(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	b.fetchToken(t, "/register")

	w := b.do(http.MethodPost, "/register", url.Values{
		"name":       {"Ana"},
		"email":      {"ana@example.com"},
		"role":       {"User"},
		"csrf_token": {"not-the-issued-token"},
	})
	assert.Contains(t, w.Body.String(), "Invalid request.")

	count, err := (&service.UserService{}).CountUsers()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestRegistrationMissingFieldWritesNothing(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	token := b.fetchToken(t, "/register")

	w := b.do(http.MethodPost, "/register", url.Values{
		"name":       {"Ana"},
		"email":      {"ana@example.com"},
		"csrf_token": {token},
	})
	assert.Contains(t, w.Body.String(), "All fields are required.")

	count, err := (&service.UserService{}).CountUsers()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestRegistrationInvalidEmail(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	token := b.fetchToken(t, "/register")

	w := b.do(http.MethodPost, "/register", url.Values{
		"name":       {"Ana"},
		"email":      {"not-an-email"},
		"role":       {"User"},
		"csrf_token": {token},
	})
	assert.Contains(t, w.Body.String(), "Enter a valid email address.")

	count, _ := (&service.UserService{}).CountUsers()
	assert.EqualValues(t, 0, count)
}

func TestRegistrationRedirectsToStatistics(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}

	w := b.register(t, "Ana", "ana@example.com", "Administrator")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/statistics", w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/statistics", nil)
	assert.Contains(t, w.Body.String(), "total=1")
	assert.Contains(t, w.Body.String(), "Administrator:1;")
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}

	w := b.register(t, "Ana", "ana@example.com", "User")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = b.register(t, "Other", "ana@example.com", "Guest")
	assert.Contains(t, w.Body.String(), "This email is already registered.")

	count, _ := (&service.UserService{}).CountUsers()
	assert.EqualValues(t, 1, count)
}

func TestStatisticsHistogramGrowsWithRegistrations(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	b.register(t, "Ana", "ana@example.com", "Administrator")
	b.register(t, "Bob", "bob@example.com", "User")
	b.register(t, "Carla", "carla@example.com", "Administrator")

	w := b.do(http.MethodGet, "/statistics", nil)
	body := w.Body.String()
	assert.Contains(t, body, "total=3")
	assert.Contains(t, body, "roles=Administrator:2;User:1;")
}

func TestLoginRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	b.register(t, "UsuarioPrueba", "usuario_prueba@example.com", "Usuario")

	token := b.fetchToken(t, "/login")
	w := b.do(http.MethodPost, "/login", url.Values{
		"name":       {"UsuarioPrueba"},
		"email":      {"usuario_prueba@example.com"},
		"csrf_token": {token},
	})
	body := w.Body.String()
	assert.Contains(t, body, "UsuarioPrueba")
	assert.Contains(t, body, "Usuario")
	assert.Contains(t, body, "Welcome, UsuarioPrueba (Usuario)")
}

func TestLoginUnknownUser(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	b.register(t, "Ana", "ana@example.com", "User")

	token := b.fetchToken(t, "/login")
	w := b.do(http.MethodPost, "/login", url.Values{
		"name":       {"Ana"},
		"email":      {"wrong@example.com"},
		"csrf_token": {token},
	})
	assert.Contains(t, w.Body.String(), "User not found")

	// Read-only path, nothing was written
	count, _ := (&service.UserService{}).CountUsers()
	assert.EqualValues(t, 1, count)
}

func TestStatisticsEmptyStore(t *testing.T) {
	setup()
	defer teardown()

	b := &browser{engine: setupRouter()}
	w := b.do(http.MethodGet, "/statistics", nil)
	body := w.Body.String()
	assert.Contains(t, body, "total=0")
	assert.Contains(t, body, "roles=chart=")

	// Even the empty chart is a real image
	idx := strings.Index(body, "chart=data:image/png;base64,")
	assert.GreaterOrEqual(t, idx, 0)
	assert.Greater(t, len(body[idx:]), len("chart=data:image/png;base64,"))
}
