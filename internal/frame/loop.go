package frame

// Loop runs tick once per frame until stopped or until tick fails.
type Loop struct {
	sched   Scheduler
	tick    func() error
	onFault func(error)

	handle  Handle
	running bool
	frames  uint64
	err     error
}

func NewLoop(s Scheduler, tick func() error) *Loop {
	return &Loop{sched: s, tick: tick}
}

// OnFault registers fn to receive the error that killed the loop.
func (l *Loop) OnFault(fn func(error)) { l.onFault = fn }

// Start requests the first frame. Starting a running loop is a no-op.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.err = nil
	l.handle = l.sched.Request(l.run)
}

// Stop cancels the pending frame. No tick runs after Stop returns.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.sched.Cancel(l.handle)
	l.handle = 0
}

func (l *Loop) Running() bool  { return l.running }
func (l *Loop) Frames() uint64 { return l.frames }
func (l *Loop) Err() error     { return l.err }

func (l *Loop) run() {
	if !l.running {
		return
	}
	l.handle = 0
	l.frames++
	if err := l.tick(); err != nil {
		l.running = false
		l.err = err
		if l.onFault != nil {
			l.onFault(err)
		}
		return
	}
	// tick may have stopped the loop (a reseed from inside the frame).
	if l.running && l.handle == 0 {
		l.handle = l.sched.Request(l.run)
	}
}
