package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"pcforge/internal/http/handlers"
	"pcforge/internal/metrics"
	"pcforge/internal/repos"
	"pcforge/internal/storage"
)

type testApp struct {
	app   *fiber.App
	db    *sqlx.DB
	users *repos.UserRepo
	media string
}

// newTestApp wires the app the way cmd/pcforge does, minus the global
// limiter and static files.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	media := t.TempDir()
	m := metrics.New("pcforge")
	deps, err := handlers.NewDeps(db, storage.NewLocalStorage(media, "/media"), m)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, BodyLimit: 8 << 20})
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(deps.Auth))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next:           func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") },
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.MountAPI(app, deps)
	handlers.MountAdmin(app, deps)
	app.Get("/metrics", handlers.RequireAPIAdmin(deps.Auth), adaptor.HTTPHandler(m.Handler()))

	return &testApp{app: app, db: db, users: repos.NewUserRepo(db), media: media}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// bind creates a session for userID and returns its id.
func (a *testApp) bind(t *testing.T, sid, userID string) string {
	t.Helper()
	if err := a.users.BindSession(sid, userID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	return sid
}

func (a *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	resp, _ := a.do(t, httptest.NewRequest("GET", "/login", nil))
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func jsonRequest(method, path, token string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type upload struct {
	name string
	data []byte
}

// formRequest builds a multipart admin form carrying the csrf token and
// session cookies.
func formRequest(t *testing.T, path, csrfTok, sid string, fields map[string]string, file *upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("csrf", csrfTok)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != nil {
		w, err := mw.CreateFormFile("image", file.name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write(file.data)
	}
	_ = mw.Close()
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs swaps the standard logger output while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
