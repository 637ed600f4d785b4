package pattern

import (
	"sort"

	"github.com/example/stripd/internal/strip"
)

// Pattern computes one frame of an animation. Implementations derive all
// phase from t (seconds since the pattern became active) scaled by speed, so
// every frame is reproducible from (t, speed) alone and nothing drifts
// across ticks. Render must tolerate an empty dst.
type Pattern interface {
	Name() string
	Render(dst strip.Frame, t, speed float64)
}

// Registry holds the known patterns by name.
type Registry struct{ m map[string]Pattern }

func NewRegistry() *Registry { return &Registry{m: map[string]Pattern{}} }

func (r *Registry) Register(p Pattern) {
	if p == nil {
		return
	}
	r.m[p.Name()] = p
}

func (r *Registry) Get(name string) (Pattern, bool) { p, ok := r.m[name]; return p, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Defaults returns a registry with every built-in pattern at its default
// tuning, rendered in the given base color where one applies.
func Defaults(base strip.Pixel) *Registry {
	r := NewRegistry()
	r.Register(Off{})
	r.Register(Solid{Color: base})
	r.Register(Rainbow{})
	r.Register(Chase{Color: base, Window: 3, StepDelay: 0.05})
	r.Register(Breathe{Color: base, Period: 4, Min: 0.05, Max: 1})
	return r
}
