package render

import "github.com/probmark/probmark/pkg/model"

// Request is the ephemeral per-call input to a render: raw content, override
// parameters keyed by name, and the target format. Requests are not retained
// between calls.
type Request struct {
	Content string
	Params  map[string]any
	Format  model.Format
}
