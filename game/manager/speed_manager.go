package manager

// SpeedManager raises the target frame rate as the score climbs.
type SpeedManager struct {
	baseFPS   int
	fpsStep   int
	scoreStep int

	fps           int
	lastIncrement int
}

func NewSpeedManager(baseFPS, fpsStep, scoreStep int) *SpeedManager {
	sm := &SpeedManager{
		baseFPS:   baseFPS,
		fpsStep:   fpsStep,
		scoreStep: scoreStep,
	}
	sm.Reset()
	return sm
}

// Update bumps the frame rate once score reaches the last milestone plus
// scoreStep. It returns the new rate and whether it changed.
func (sm *SpeedManager) Update(score int) (int, bool) {
	if sm.scoreStep <= 0 || score < sm.lastIncrement+sm.scoreStep {
		return sm.fps, false
	}
	sm.fps += sm.fpsStep
	sm.lastIncrement = score
	return sm.fps, true
}

func (sm *SpeedManager) FPS() int {
	return sm.fps
}

// LastIncrement is the score at which the frame rate last went up.
func (sm *SpeedManager) LastIncrement() int {
	return sm.lastIncrement
}

func (sm *SpeedManager) Reset() {
	sm.fps = sm.baseFPS
	sm.lastIncrement = 0
}
