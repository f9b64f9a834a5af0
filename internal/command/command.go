// Package command parses the line protocol shared by the WebSocket and
// terminal front ends:
//
//	g          fetch the current state
//	o ROW COL  reveal a cell
//	f ROW COL  toggle a flag
//	n PRESET   start a new game
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Kind string

const (
	Noop    Kind = "g"
	Open    Kind = "o"
	Flag    Kind = "f"
	NewGame Kind = "n"
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Noop:    0,
	Open:    2,
	Flag:    2,
	NewGame: 1,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
	ErrOutOfBounds    = errors.New("invalid cell coordinates")
)

type Command struct {
	Kind   Kind
	Point  mines.Point
	Preset string
}

func (c Command) String() string {
	switch c.Kind {
	case Open, Flag:
		return fmt.Sprintf("%s %d %d", c.Kind, c.Point.Row, c.Point.Col)
	case NewGame:
		return fmt.Sprintf("%s %s", c.Kind, c.Preset)
	default:
		return string(c.Kind)
	}
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}

	kind := Kind(parts[0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	args := parts[1:]
	if nargs != len(args) {
		return Command{}, ErrBadArgs
	}

	cmd := Command{Kind: kind}
	switch kind {
	case Open, Flag:
		p, err := parsePoint(args)
		if err != nil {
			return Command{}, err
		}
		cmd.Point = p
	case NewGame:
		cmd.Preset = args[0]
	}
	return cmd, nil
}

func parsePoint(args []string) (p mines.Point, err error) {
	if p.Row, err = strconv.Atoi(args[0]); err != nil {
		return p, fmt.Errorf("row must be an int")
	}
	if p.Col, err = strconv.Atoi(args[1]); err != nil {
		return p, fmt.Errorf("column must be an int")
	}
	return p, nil
}

// Lines yields the trimmed, non-empty lines of a message.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// Target is whatever holds the game a command is played against.
type Target interface {
	Reveal(p mines.Point)
	ToggleFlag(p mines.Point)
	NewGame(preset string) error
	InBounds(p mines.Point) bool
}

func Execute(t Target, c Command) error {
	switch c.Kind {
	case Noop:
		return nil
	case Open, Flag:
		if !t.InBounds(c.Point) {
			return fmt.Errorf("%w %s", ErrOutOfBounds, c.Point)
		}
		if c.Kind == Open {
			t.Reveal(c.Point)
		} else {
			t.ToggleFlag(c.Point)
		}
		return nil
	case NewGame:
		return t.NewGame(c.Preset)
	}
	return ErrUnknownCommand
}

// Run parses and executes every line of message in order, stopping at the
// first error.
func Run(t Target, message string) error {
	for _, line := range Lines(message) {
		c, err := Parse(line)
		if err != nil {
			return err
		}
		if err := Execute(t, c); err != nil {
			return err
		}
	}
	return nil
}
