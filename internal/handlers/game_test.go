package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

type view struct {
	SessionId string   `json:"session_id"`
	Preset    string   `json:"preset"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	Phase     string   `json:"phase"`
	Result    string   `json:"result"`
	Remaining int      `json:"remaining_mines"`
	Grid      [][]int8 `json:"grid"`
}

type testServer struct {
	*httptest.Server
	store *session.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("COOKIES_DOMAIN", "")
	t.Setenv("COOKIES_SECURE", "0")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	j, err := config.NewJWTWithSecret([]byte(strings.Repeat("s", 32)))
	require.NoError(t, err)
	cookies, err := config.NewCookies(j)
	require.NoError(t, err)
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	store := session.NewStore(logger, mines.DefaultPresets, time.Hour)
	t.Cleanup(store.Close)
	game := NewGameHandler(logger, store, cookies, ws)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", game.Status)
	mux.HandleFunc("GET /presets", game.Presets)
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/new", game.Restart)
	mux.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	mux.HandleFunc("POST /game/{id}/flag", game.Flag)
	mux.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	srv := httptest.NewServer(middleware.Wrap(mux, middleware.Session(logger, cookies)))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store}
}

func (s *testServer) client(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url string, into any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if into != nil && res.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(res.Body).Decode(into))
	}
	return res.StatusCode
}

func (s *testServer) newGame(t *testing.T, c *http.Client, preset string) view {
	t.Helper()
	var v view
	status := do(t, c, http.MethodPost, s.URL+"/game?preset="+preset, &v)
	require.Equal(t, http.StatusCreated, status)
	return v
}

func TestNewGame(t *testing.T) {
	srv := newTestServer(t)
	c := srv.client(t)

	v := srv.newGame(t, c, "medium")

	assert.Equal(t, "medium", v.Preset)
	assert.Equal(t, "pending", v.Phase)
	assert.Empty(t, v.Result)
	assert.Equal(t, 40, v.Remaining)
	require.Len(t, v.Grid, 16)
	for _, row := range v.Grid {
		require.Len(t, row, 16)
		for _, cell := range row {
			assert.Equal(t, int8(mines.Hidden), cell)
		}
	}
	assert.Equal(t, 1, srv.store.Len())

	u, _ := url.Parse(srv.URL)
	assert.NotEmpty(t, c.Jar.Cookies(u))
}

func TestNewGameDefaultsToFirstPreset(t *testing.T) {
	srv := newTestServer(t)
	v := srv.newGame(t, srv.client(t), "")
	assert.Equal(t, "easy", v.Preset)
	assert.Equal(t, 9, v.Cols)
}

func TestNewGameUnknownPreset(t *testing.T) {
	srv := newTestServer(t)
	status := do(t, srv.client(t), http.MethodPost, srv.URL+"/game?preset=nightmare", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Zero(t, srv.store.Len())
}

func TestPlay(t *testing.T) {
	srv := newTestServer(t)
	c := srv.client(t)
	id := srv.newGame(t, c, "easy").SessionId
	base := srv.URL + "/game/" + id

	var v view
	require.Equal(t, http.StatusOK, do(t, c, http.MethodPost, base+"/reveal?row=4&col=4", &v))
	assert.Equal(t, "active", v.Phase)
	assert.Equal(t, int8(0), v.Grid[4][4])

	hidden := mines.Point{Row: -1}
	for row := range v.Grid {
		for col, cell := range v.Grid[row] {
			if cell == int8(mines.Hidden) && hidden.Row < 0 {
				hidden = mines.Point{Row: row, Col: col}
			}
		}
	}
	require.GreaterOrEqual(t, hidden.Row, 0)

	flag := base + "/flag?row=" + strconv.Itoa(hidden.Row) + "&col=" + strconv.Itoa(hidden.Col)
	require.Equal(t, http.StatusOK, do(t, c, http.MethodPost, flag, &v))
	assert.Equal(t, 9, v.Remaining)
	assert.Equal(t, int8(mines.Flagged), v.Grid[hidden.Row][hidden.Col])

	var fetched view
	require.Equal(t, http.StatusOK, do(t, c, http.MethodGet, base, &fetched))
	assert.Equal(t, v.Grid, fetched.Grid)
}

func TestMoveBadRequest(t *testing.T) {
	srv := newTestServer(t)
	c := srv.client(t)
	base := srv.URL + "/game/" + srv.newGame(t, c, "easy").SessionId

	tests := []string{
		"/reveal?row=9&col=0",
		"/reveal?row=-1&col=0",
		"/flag?row=a&col=0",
		"/reveal?col=2",
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, c, http.MethodPost, base+tt, nil))
		})
	}

	var v view
	require.Equal(t, http.StatusOK, do(t, c, http.MethodGet, base, &v))
	assert.Equal(t, "pending", v.Phase)
}

func TestRestart(t *testing.T) {
	srv := newTestServer(t)
	c := srv.client(t)
	id := srv.newGame(t, c, "easy").SessionId
	base := srv.URL + "/game/" + id

	var v view
	require.Equal(t, http.StatusOK, do(t, c, http.MethodPost, base+"/reveal?row=0&col=0", &v))
	require.Equal(t, "active", v.Phase)

	require.Equal(t, http.StatusOK, do(t, c, http.MethodPost, base+"/new", &v))
	assert.Equal(t, "pending", v.Phase)
	assert.Equal(t, "easy", v.Preset)
	assert.Equal(t, id, v.SessionId)

	require.Equal(t, http.StatusOK, do(t, c, http.MethodPost, base+"/new?preset=hard", &v))
	assert.Equal(t, 30, v.Cols)
	assert.Equal(t, 99, v.Remaining)

	assert.Equal(t, http.StatusBadRequest, do(t, c, http.MethodPost, base+"/new?preset=nope", nil))
}

func TestSessionAccess(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.client(t)
	other := srv.client(t)
	id := srv.newGame(t, owner, "easy").SessionId
	srv.newGame(t, other, "easy")

	assert.Equal(t, http.StatusUnauthorized, do(t, other, http.MethodGet, srv.URL+"/game/"+id, nil))
	assert.Equal(t, http.StatusUnauthorized, do(t, http.DefaultClient, http.MethodGet, srv.URL+"/game/"+id, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, owner, http.MethodGet, srv.URL+"/game/not-a-uuid", nil))

	srv.store.Evict(time.Now().Add(2 * time.Hour))
	assert.Equal(t, http.StatusNotFound, do(t, owner, http.MethodGet, srv.URL+"/game/"+id, nil))
}

func TestStatusAndPresets(t *testing.T) {
	srv := newTestServer(t)

	var presets []struct {
		Name      string `json:"name"`
		Rows      int    `json:"rows"`
		Cols      int    `json:"cols"`
		MineCount int    `json:"mine_count"`
	}
	require.Equal(t, http.StatusOK, do(t, http.DefaultClient, http.MethodGet, srv.URL+"/presets", &presets))
	require.Len(t, presets, 3)
	assert.Equal(t, "hard", presets[2].Name)
	assert.Equal(t, 99, presets[2].MineCount)

	var status map[string]any
	require.Equal(t, http.StatusOK, do(t, http.DefaultClient, http.MethodGet, srv.URL+"/status", &status))
	assert.Equal(t, "ok", status["status"])
}

func TestConnectWS(t *testing.T) {
	srv := newTestServer(t)
	c := srv.client(t)
	id := srv.newGame(t, c, "hard").SessionId

	u, _ := url.Parse(srv.URL)
	header := http.Header{}
	for _, cookie := range c.Jar.Cookies(u) {
		header.Add("Cookie", cookie.String())
	}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/connect"

	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() map[string]json.RawMessage {
		var m map[string]json.RawMessage
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("g")))
	m := read()
	assert.Equal(t, `"view"`, string(m["type"]))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0\no 99 0\nf 1 1")))
	m = read()
	assert.Equal(t, `"error"`, string(m["type"]))
	assert.Equal(t, mines.Flagged, srv.mustGet(t, id).Snapshot().Grid[0])
	assert.Equal(t, mines.Hidden, srv.mustGet(t, id).Snapshot().Grid[31])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 8 15")))
	var v view
	for {
		m = read()
		if string(m["type"]) == `"view"` {
			require.NoError(t, json.Unmarshal(m["session"], &v))
			break
		}
	}
	assert.Equal(t, "active", v.Phase)

	for string(m["type"]) != `"tick"` {
		m = read()
	}
	assert.Equal(t, "1", string(m["elapsed"]))
}

func (s *testServer) mustGet(t *testing.T, id string) *session.Session {
	t.Helper()
	sess, err := s.store.Get(uuid.MustParse(id))
	require.NoError(t, err)
	return sess
}
