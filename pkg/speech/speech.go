package speech

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

// Engine turns text into audio. Speak blocks until playback ends and must stop
// early when ctx is cancelled.
type Engine interface {
	Speak(ctx context.Context, text string) error
}

// Narrator owns an engine and makes sure at most one Voice plays at a time.
type Narrator struct {
	engine Engine

	mu     sync.Mutex
	active *Voice
}

func NewNarrator(engine Engine) *Narrator {
	return &Narrator{engine: engine}
}

// NewVoice returns an idle playback source, e.g. one per explanation plus one for
// "play all".
func (n *Narrator) NewVoice() *Voice {
	return &Voice{n: n}
}

// Stop cancels whatever is playing.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.active != nil {
		n.active.stopLocked()
	}
}

// Voice is a playback source with two states, idle and speaking.
type Voice struct {
	n *Narrator

	// guarded by n.mu
	speaking bool
	cancel   context.CancelFunc
	done     chan struct{}
	err      error
}

// Toggle starts speaking text when the voice is idle, cancelling any other voice
// first, and cancels playback when it is speaking. It reports whether playback started.
func (v *Voice) Toggle(ctx context.Context, text string) bool {
	n := v.n
	n.mu.Lock()
	defer n.mu.Unlock()

	if v.speaking {
		v.stopLocked()
		return false
	}
	if n.active != nil {
		n.active.stopLocked()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.speaking, v.cancel, v.done, v.err = true, cancel, done, nil
	n.active = v

	go func() {
		err := n.engine.Speak(ctx, text)
		cancel()

		n.mu.Lock()
		if v.done == done {
			v.speaking = false
			v.cancel = nil
			v.err = err
			if n.active == v {
				n.active = nil
			}
		}
		n.mu.Unlock()
		close(done)
	}()
	return true
}

// Speaking reports whether the voice is currently playing.
func (v *Voice) Speaking() bool {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	return v.speaking
}

// Wait blocks until the latest playback ends. Cancellation is not an error.
func (v *Voice) Wait() error {
	v.n.mu.Lock()
	done := v.done
	v.n.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done

	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if v.done != done || errors.Is(v.err, context.Canceled) {
		return nil
	}
	return v.err
}

func (v *Voice) stopLocked() {
	if v.cancel != nil {
		v.cancel()
	}
	v.speaking = false
	v.cancel = nil
	if v.n.active == v {
		v.n.active = nil
	}
}

// ItemText is what a single explanation reads as.
func ItemText(e model.Explanation) string {
	return e.Term + ": " + e.Explanation
}

// AllText reads every explanation in order.
func AllText(list []model.Explanation) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, ItemText(e))
	}
	return strings.Join(parts, ". Next topic: ")
}
