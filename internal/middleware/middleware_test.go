package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.NotFoundHandler(), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/game?preset=easy", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"bytes":15`)
	assert.Contains(t, buf.String(), `"uri":"/game?preset=easy"`)
}

func TestCors(t *testing.T) {
	h := Cors([]string{"https://sweep.example"})(http.NotFoundHandler())

	tests := []struct {
		origin string
		allow  string
	}{
		{"https://sweep.example", "https://sweep.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.allow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSession(t *testing.T) {
	t.Setenv("COOKIES_DOMAIN", "localhost")
	j, err := config.NewJWTWithSecret([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	cookies, err := config.NewCookies(j)
	require.NoError(t, err)

	var claims *config.SessionClaims
	var found bool
	h := Session(slog.Default(), cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, found = SessionClaims(r)
	}))

	issued := httptest.NewRecorder()
	require.NoError(t, cookies.Issue(issued, "abc"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range issued.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, found)
	assert.Equal(t, "abc", claims.SessionId)
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.False(t, found)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, found)
	assert.Empty(t, rec.Result().Cookies())
}
