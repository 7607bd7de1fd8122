package engine

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// ReplayVersion is bumped whenever recorded replays stop re-simulating identically.
const ReplayVersion = 1

// Frame is one recorded Tick, repeated Repeat times (0 is treated as 1).
type Frame struct {
	Elapsed  time.Duration `json:"dt"`
	Commands []Command     `json:"cmds,omitempty"`
	Repeat   int           `json:"n,omitempty"`
}

func (f Frame) count() int {
	if f.Repeat <= 0 {
		return 1
	}
	return f.Repeat
}

// Replay is everything needed to re-simulate a game: configuration (seed included),
// non-standard shapes and the exact tick sequence.
type Replay struct {
	Version int         `json:"version"`
	Config  Config      `json:"config"`
	Shapes  []ShapeSpec `json:"shapes,omitempty"`
	Frames  []Frame     `json:"frames"`
}

// Ticks returns the number of recorded ticks.
func (r Replay) Ticks() int {
	n := 0
	for _, f := range r.Frames {
		n += f.count()
	}
	return n
}

// Duration returns the total simulated time.
func (r Replay) Duration() time.Duration {
	var d time.Duration
	for _, f := range r.Frames {
		d += f.Elapsed * time.Duration(f.count())
	}
	return d
}

// MarshalReplay encodes r as JSON.
func MarshalReplay(r Replay) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("engine: encode replay: %w", err)
	}
	return data, nil
}

// UnmarshalReplay decodes a replay produced by MarshalReplay.
func UnmarshalReplay(data []byte) (Replay, error) {
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		return Replay{}, fmt.Errorf("engine: decode replay: %w", err)
	}
	if r.Version != ReplayVersion {
		return Replay{}, fmt.Errorf("engine: replay version %d, want %d", r.Version, ReplayVersion)
	}
	return r, nil
}

// Recorder wraps an Engine and records every Tick.
type Recorder struct {
	engine *Engine
	replay Replay
}

// NewRecorder starts recording e. e must not have been ticked yet.
func NewRecorder(e *Engine) *Recorder {
	return &Recorder{
		engine: e,
		replay: Replay{Version: ReplayVersion, Config: e.Config(), Shapes: e.catalog.Overrides()},
	}
}

// Engine returns the recorded engine.
func (r *Recorder) Engine() *Engine {
	return r.engine
}

// Tick records the frame and forwards it to the engine.
func (r *Recorder) Tick(dt time.Duration, cmds ...Command) TickResult {
	if !r.engine.GameOver() {
		r.record(dt, cmds)
	}
	return r.engine.Tick(dt, cmds...)
}

func (r *Recorder) record(dt time.Duration, cmds []Command) {
	frames := r.replay.Frames
	if n := len(frames); n > 0 && len(cmds) == 0 {
		last := &frames[n-1]
		if last.Elapsed == dt && len(last.Commands) == 0 {
			last.Repeat = last.count() + 1
			return
		}
	}
	r.replay.Frames = append(frames, Frame{Elapsed: dt, Commands: slices.Clone(cmds)})
}

// Replay returns a copy of the recording so far.
func (r *Recorder) Replay() Replay {
	out := r.replay
	out.Frames = slices.Clone(r.replay.Frames)
	return out
}

// Run re-simulates r on a fresh engine and returns the final state.
// Options are applied after the replay's own shapes.
func Run(r Replay, opts ...Option) (Snapshot, error) {
	if len(r.Shapes) > 0 {
		cat, err := NewCatalog(r.Shapes...)
		if err != nil {
			return Snapshot{}, err
		}
		opts = append([]Option{WithCatalog(cat)}, opts...)
	}
	e, err := New(r.Config, opts...)
	if err != nil {
		return Snapshot{}, err
	}
	for _, f := range r.Frames {
		for i, n := 0, f.count(); i < n; i++ {
			e.Tick(f.Elapsed, f.Commands...)
		}
	}
	return e.Snapshot(), nil
}
