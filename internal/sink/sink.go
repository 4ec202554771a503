// Package sink persists the collected artist records.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepinkainen/artistpulse/internal/collect"
)

// Sink receives the complete, ordered record list of a run.
type Sink interface {
	Name() string
	Write(ctx context.Context, records []collect.ArtistRecord) error
}

// Multi writes to every sink in order and joins their errors.
type Multi []Sink

func (m Multi) Name() string {
	return "multi"
}

func (m Multi) Write(ctx context.Context, records []collect.ArtistRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, records); err != nil {
			errs = append(errs, fmt.Errorf("%s sink: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
