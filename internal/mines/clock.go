package mines

// Clock is started when the first click generates the board and stopped on
// the transition to Won or Lost. Implementations own the actual scheduling.
type Clock interface {
	Start()
	Stop()
}

type nopClock struct{}

func (nopClock) Start() {}
func (nopClock) Stop()  {}
