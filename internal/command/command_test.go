package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  error
	}{
		{line: "g", want: Command{Kind: Noop}},
		{line: "o 3 4", want: Command{Kind: Open, Point: mines.Point{Row: 3, Col: 4}}},
		{line: "  f 0   12 ", want: Command{Kind: Flag, Point: mines.Point{Row: 0, Col: 12}}},
		{line: "n hard", want: Command{Kind: NewGame, Preset: "hard"}},
		{line: "", err: ErrUnknownCommand},
		{line: "c 1 1", err: ErrUnknownCommand},
		{line: "o 1", err: ErrBadArgs},
		{line: "g 1", err: ErrBadArgs},
		{line: "n", err: ErrBadArgs},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := Parse(test.line)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseNotInt(t *testing.T) {
	_, err := Parse("o a 1")
	assert.EqualError(t, err, "row must be an int")
	_, err = Parse("f 1 b")
	assert.EqualError(t, err, "column must be an int")
}

func TestCommandString(t *testing.T) {
	for _, line := range []string{"g", "o 3 4", "f 0 12", "n medium"} {
		c, err := Parse(line)
		require.NoError(t, err)
		assert.Equal(t, line, c.String())
	}
}

func TestLines(t *testing.T) {
	var got []string
	for i, line := range Lines("o 1 1\n\n  f 2 2  \r\ng\n") {
		assert.Equal(t, len(got), i)
		got = append(got, line)
	}
	assert.Equal(t, []string{"o 1 1", "f 2 2", "g"}, got)
}

type recorder struct {
	moves []string
}

func (r *recorder) Reveal(p mines.Point)     { r.moves = append(r.moves, "open "+p.String()) }
func (r *recorder) ToggleFlag(p mines.Point) { r.moves = append(r.moves, "flag "+p.String()) }
func (r *recorder) InBounds(p mines.Point) bool {
	return p.Row >= 0 && p.Row < 2 && p.Col >= 0 && p.Col < 2
}
func (r *recorder) NewGame(preset string) error {
	if preset != "easy" {
		return errors.New("unknown preset")
	}
	r.moves = append(r.moves, "new "+preset)
	return nil
}

func TestRun(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Run(r, "n easy\no 1 1\nf 0 1\ng"))
	assert.Equal(t, []string{"new easy", "open 1:1", "flag 0:1"}, r.moves)
}

func TestRunStopsAtError(t *testing.T) {
	r := &recorder{}
	err := Run(r, "o 0 0\no 5 5\nf 1 1")
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, []string{"open 0:0"}, r.moves)

	r = &recorder{}
	assert.Error(t, Run(r, "n nightmare\no 0 0"))
	assert.Empty(t, r.moves)
}
