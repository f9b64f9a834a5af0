package mines

import "fmt"

// Phase is the top-level state of a game. It only moves forward:
// Pending -> Active -> Won | Lost.
type Phase uint8

const (
	Pending Phase = iota
	Active
	Won
	Lost
)

var phaseNames = [...]string{
	Pending: "pending",
	Active:  "active",
	Won:     "won",
	Lost:    "lost",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

func (p Phase) Over() bool {
	return p == Won || p == Lost
}

// [Phase] implements [encoding.TextMarshaler]
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Result is the outcome signal shown to the player: "", "won" or "lost".
func (p Phase) Result() string {
	if p.Over() {
		return p.String()
	}
	return ""
}

func (p Phase) Message() string {
	switch p {
	case Won:
		return "\U0001F389 Cleared!"
	case Lost:
		return "\U0001F4A5 Game over"
	default:
		return ""
	}
}
