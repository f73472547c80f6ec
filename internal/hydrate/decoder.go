// Package hydrate converts loosely typed option payloads into strongly typed
// structs via a JSON round trip.
package hydrate

import (
	"encoding/json"
	"fmt"
	"io"
)

// PostHook lets callers adjust or validate the hydrated struct after decoding.
type PostHook[T any] func(*T) error

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder hydrates JSON payloads into values of T.
type Decoder[T any] struct {
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// UseNumber enables json.Decoder.UseNumber during decoding.
func UseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.UseNumber()
		})
	}
}

// DisallowUnknownFields invokes json.Decoder.DisallowUnknownFields.
func DisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// WithDecoderConfig allows callers to configure the json.Decoder directly.
func WithDecoderConfig[T any](configure func(*json.Decoder)) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if configure != nil {
			d.configureDec = append(d.configureDec, configure)
		}
	}
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode reads a JSON document from r into a value of T, applying configured
// hooks.
func (d *Decoder[T]) Decode(r io.Reader) (T, error) {
	var result T

	decoder := json.NewDecoder(r)
	for _, configure := range d.configureDec {
		if configure != nil {
			configure(decoder)
		}
	}
	if err := decoder.Decode(&result); err != nil {
		var zero T
		return zero, fmt.Errorf("hydrate: decode: %w", err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(&result); err != nil {
			var zero T
			return zero, fmt.Errorf("hydrate: post-hook failed: %w", err)
		}
	}

	return result, nil
}
