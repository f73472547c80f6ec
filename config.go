package palette

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-palette/internal/hydrate"
)

// Config is the construction input for a Store. Actions is required and
// seeds the registry through the same path as later registrations.
type Config struct {
	Actions []Action
	Options Options
}

// Animations carries the palette's transition durations in milliseconds.
type Animations struct {
	EnterMs int `json:"enterMs"`
	ExitMs  int `json:"exitMs"`
}

// Options holds construction-time tuning. Extra is an open bag for host
// integrations; use DecodeExtra to project it onto a typed struct.
type Options struct {
	Animations Animations     `json:"animations"`
	Extra      map[string]any `json:"extra,omitempty"`
}

func defaultOptions() Options {
	return Options{
		Animations: Animations{
			EnterMs: 200,
			ExitMs:  100,
		},
	}
}

// DecodeExtra hydrates the options' Extra bag into T. Unknown keys are
// rejected so integration typos surface early.
func DecodeExtra[T any](options Options) (T, error) {
	var zero T
	raw, err := json.Marshal(options.Extra)
	if err != nil {
		return zero, fmt.Errorf("palette: encode extra options: %w", err)
	}
	decoder := hydrate.NewDecoder[T](hydrate.DisallowUnknownFields[T]())
	out, err := decoder.Decode(bytes.NewReader(raw))
	if err != nil {
		return zero, fmt.Errorf("palette: decode extra options: %w", err)
	}
	return out, nil
}
