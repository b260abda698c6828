package component

// FlightMode is the player's temporary powered-ascent state. At most one mode
// is active at a time.
type FlightMode int

const (
	FlightNone FlightMode = iota
	FlightJetpack
	FlightPropeller
)

func (m FlightMode) String() string {
	switch m {
	case FlightJetpack:
		return "jetpack"
	case FlightPropeller:
		return "propeller"
	default:
		return "none"
	}
}

// Doodler is the player controller state. Position, velocity and size live in
// the Transform, Velocity and Body components of the same entity.
type Doodler struct {
	Gravity     float64
	JumpImpulse float64
	MoveSpeed   float64

	JetpackSpeed    float64
	JetpackFrames   int
	PropellerSpeed  float64
	PropellerFrames int

	// FireInterval is the auto-fire cadence in ticks while the propeller is
	// active. FireCounter counts ticks since the last shot.
	FireInterval int
	FireCounter  int

	FacingLeft  bool
	Flight      FlightMode
	FlightTimer int
}

var DoodlerComponent = NewComponent[Doodler]("doodler")

func (d *Doodler) MoveLeft(v *Velocity) {
	v.X = -d.MoveSpeed
	d.FacingLeft = true
}

func (d *Doodler) MoveRight(v *Velocity) {
	v.X = d.MoveSpeed
	d.FacingLeft = false
}

func (d *Doodler) Stop(v *Velocity) {
	v.X = 0
}

func (d *Doodler) Jump(v *Velocity) {
	v.Y = d.JumpImpulse
}

// ActivateJetpack switches to jetpack flight, cancelling any propeller, and
// re-arms the timer.
func (d *Doodler) ActivateJetpack() {
	d.Flight = FlightJetpack
	d.FlightTimer = d.JetpackFrames
}

// ActivatePropellerHat switches to propeller flight, cancelling any jetpack,
// re-arms the timer and restarts the auto-fire cadence.
func (d *Doodler) ActivatePropellerHat() {
	d.Flight = FlightPropeller
	d.FlightTimer = d.PropellerFrames
	d.FireCounter = 0
}

func (d *Doodler) Flying() bool {
	return d.Flight != FlightNone
}

// Step advances the player one tick: flight or gravity, integration and
// horizontal wrap-around.
func (d *Doodler) Step(t *Transform, v *Velocity, b *Body, viewportWidth float64) {
	switch d.Flight {
	case FlightJetpack:
		v.Y = d.JetpackSpeed
		d.tickFlight()
	case FlightPropeller:
		v.Y = d.PropellerSpeed
		d.tickFlight()
	default:
		v.Y += d.Gravity
	}

	t.Integrate(v)

	if t.X+b.Width < 0 {
		t.X = viewportWidth
	} else if t.X > viewportWidth {
		t.X = -b.Width
	}
}

func (d *Doodler) tickFlight() {
	d.FlightTimer--
	if d.FlightTimer <= 0 {
		d.FlightTimer = 0
		d.Flight = FlightNone
	}
}

// TickAutoFire advances the auto-fire accumulator and reports whether a
// projectile is due this tick. It only runs under propeller power.
func (d *Doodler) TickAutoFire() bool {
	if d.Flight != FlightPropeller || d.FireInterval <= 0 {
		return false
	}
	d.FireCounter++
	if d.FireCounter < d.FireInterval {
		return false
	}
	d.FireCounter = 0
	return true
}
