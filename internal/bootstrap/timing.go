// Package bootstrap wires configuration into the application services.
package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chaoxe/miniapp/internal/logging"
)

// phaseTimer records how long each wiring phase took.
type phaseTimer struct {
	start  time.Time
	last   time.Time
	phases []phase
}

type phase struct {
	name string
	took time.Duration
}

func newPhaseTimer() *phaseTimer {
	now := time.Now()
	return &phaseTimer{start: now, last: now}
}

// mark records the time since the previous mark under name.
func (t *phaseTimer) mark(name string) {
	now := time.Now()
	t.phases = append(t.phases, phase{name: name, took: now.Sub(t.last)})
	t.last = now
}

// log writes every phase and the total at level.
func (t *phaseTimer) log(ctx context.Context, level zerolog.Level, msg string) {
	event := logging.FromContext(ctx).WithLevel(level).Dur("total", time.Since(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.took)
	}
	event.Msg(msg)
}
