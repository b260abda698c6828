package component

// Progress is the per-round singleton holding score and the game-over latch.
type Progress struct {
	Score int
	Over  bool
	Cause string
}

var ProgressComponent = NewComponent[Progress]("progress")

// AddScore adds a non-negative amount; score never decreases.
func (p *Progress) AddScore(n int) {
	if n > 0 {
		p.Score += n
	}
}

// End latches the game-over state. Only the first cause is kept.
func (p *Progress) End(cause string) bool {
	if p.Over {
		return false
	}
	p.Over = true
	p.Cause = cause
	return true
}
