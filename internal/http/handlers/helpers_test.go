package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bazaar/internal/config"
	"bazaar/internal/http/handlers"
	applog "bazaar/internal/log"
	"bazaar/internal/repos"
)

const (
	adminUser = "admin"
	adminPass = "password123"
)

// client drives the full app the way a browser would: it keeps the sid and
// csrf_ cookies and posts the token with every form.
type client struct {
	t    *testing.T
	app  *fiber.App
	deps *handlers.Deps
	db   *sqlx.DB
	sid  string
	csrf string
}

func newClient(t *testing.T, opt handlers.Options) *client {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if opt.RateLimit == 0 {
		opt.RateLimit = 1000
	}
	deps := handlers.NewDeps(db, config.ForTest(adminUser, adminPass))
	cl := &client{t: t, app: handlers.NewApp(deps, opt), deps: deps, db: db}
	cl.get("/login")
	if cl.csrf == "" || cl.sid == "" {
		t.Fatalf("priming request set no cookies (sid=%q csrf=%q)", cl.sid, cl.csrf)
	}
	return cl
}

// fork is a second browser against the same app.
func (cl *client) fork() *client {
	other := &client{t: cl.t, app: cl.app, deps: cl.deps, db: cl.db}
	other.get("/login")
	return other
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.t.Helper()
	if cl.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cl.sid})
	}
	if cl.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: cl.csrf})
	}
	resp, err := cl.app.Test(req, -1)
	if err != nil {
		cl.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		switch c.Name {
		case "sid":
			cl.sid = c.Value
		case "csrf_":
			cl.csrf = c.Value
		}
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	cl.t.Helper()
	return cl.do(httptest.NewRequest("GET", path, nil))
}

func (cl *client) post(path string, form url.Values) *http.Response {
	cl.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", cl.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func (cl *client) login() {
	cl.t.Helper()
	resp := cl.post("/login", url.Values{"username": {adminUser}, "password": {adminPass}})
	if resp.StatusCode != http.StatusFound {
		cl.t.Fatalf("admin login: expected 302, got %d", resp.StatusCode)
	}
}

func (cl *client) json(path string, v any) int {
	cl.t.Helper()
	resp := cl.get(path)
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		cl.t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.b.Write(p)
}

// captureLogs collects the JSON log lines written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var w lockedWriter
	restore := applog.SetOutput(&w)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.b.String()), "\n") {
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
