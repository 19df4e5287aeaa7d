// Package progress computes per-client form-completion progress from the
// module catalogue and a set of completion flags.
package progress

import (
	"math"

	"github.com/sells-group/advisory-cli/internal/model"
)

// Progress is a client's intake completion state.
type Progress struct {
	Percent   int             `json:"percent"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	// Next is the first incomplete module in catalogue priority order,
	// empty once every module is done.
	Next model.ModuleKey `json:"next_module,omitempty"`
}

// Compute derives the completion ratio and the next module to fill in.
// Flags for modules outside the catalogue are ignored; the catalogue's
// cardinality is the denominator, so a missing flag counts as incomplete.
func Compute(flags model.ModuleFlags, cat *model.Catalog) Progress {
	keys := cat.ModuleKeys()
	p := Progress{Total: len(keys)}

	for _, key := range keys {
		if flags[key] {
			p.Completed++
		} else if p.Next == "" {
			p.Next = key
		}
	}

	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}
