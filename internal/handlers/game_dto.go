package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type PresetDTO struct {
	Preset string `schema:"preset"`
}

func ParsePresetDTO(src url.Values) (PresetDTO, error) {
	var dto PresetDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func ParsePoint(src url.Values) (mines.Point, error) {
	var p mines.Point
	err := decoder.Decode(&p, src)
	return p, err
}

type GameSessionDTO struct {
	SessionId string              `json:"session_id"`
	Preset    string              `json:"preset"`
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	MineCount int                 `json:"mine_count"`
	Phase     mines.Phase         `json:"phase"`
	Result    string              `json:"result,omitempty"`
	Message   string              `json:"message,omitempty"`
	Remaining int                 `json:"remaining_mines"`
	Elapsed   int                 `json:"elapsed"`
	Grid      [][]mines.CellState `json:"grid"`
}

func NewGameSessionDTO(s session.Snapshot) *GameSessionDTO {
	rows, cols, mineCount := s.Params.Unpack()
	grid := make([][]mines.CellState, rows)
	for row := range grid {
		grid[row] = s.Grid[row*cols : (row+1)*cols]
	}
	return &GameSessionDTO{
		SessionId: s.ID.String(),
		Preset:    s.Preset,
		Rows:      rows,
		Cols:      cols,
		MineCount: mineCount,
		Phase:     s.Phase,
		Result:    s.Phase.Result(),
		Message:   s.Phase.Message(),
		Remaining: s.Remaining,
		Elapsed:   s.Elapsed,
		Grid:      grid,
	}
}
