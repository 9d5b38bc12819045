package component

// Clip identifies an animation sequence of an animated sprite.
type Clip string

const (
	ClipIdle Clip = "idle"
	ClipRun  Clip = "run"
)

// Animation is a frame-counted animator. It carries no images; the renderer
// maps (clip, frame) onto a sheet.
type Animation struct {
	Clip       Clip
	FrameCount int
	Loop       bool

	current     int
	tick        int
	ticksPerFrm int
}

// NewAnimation creates an Animation that advances one frame every ticksPerFrame
// updates. frameCount below one is treated as a single still frame.
func NewAnimation(frameCount, ticksPerFrame int, loop bool) *Animation {
	if frameCount < 1 {
		frameCount = 1
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	return &Animation{
		Clip:        ClipIdle,
		FrameCount:  frameCount,
		Loop:        loop,
		ticksPerFrm: ticksPerFrame,
	}
}

// Play switches to clip, restarting from the first frame when it changes.
func (a *Animation) Play(clip Clip) {
	if a == nil || a.Clip == clip {
		return
	}
	a.Clip = clip
	a.Reset()
}

// Update advances the animation by one game tick.
func (a *Animation) Update() {
	if a == nil || a.FrameCount <= 1 {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	a.current++
	if a.current >= a.FrameCount {
		if a.Loop {
			a.current = 0
		} else {
			a.current = a.FrameCount - 1
		}
	}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.current
}
