package component

// Cooldown counts frames until an action may repeat.
type Cooldown struct {
	Frames    int
	Remaining int
}

func NewCooldown(frames int) Cooldown {
	return Cooldown{Frames: frames}
}

func (c *Cooldown) Ready() bool {
	return c.Remaining <= 0
}

// Start begins a new cooldown window.
func (c *Cooldown) Start() {
	c.Remaining = c.Frames
}

func (c *Cooldown) Tick() {
	if c.Remaining > 0 {
		c.Remaining--
	}
}
