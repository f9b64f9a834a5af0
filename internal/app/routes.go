package app

import (
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.store, a.cookies, a.ws)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", game.Status)
	mux.HandleFunc("GET /presets", game.Presets)
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/new", game.Restart)
	mux.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	mux.HandleFunc("POST /game/{id}/flag", game.Flag)
	mux.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	base := strings.TrimSuffix(config.BasePath(), "/")
	if base == "" {
		a.router.Handle("/", mux)
		return
	}
	a.router.Handle(base+"/", http.StripPrefix(base, mux))
}
