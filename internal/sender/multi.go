package sender

import (
	"context"
	"errors"
	"fmt"
)

// Multi fans a report out to several senders. A failing sender does not
// stop delivery to the others.
type Multi struct {
	senders []Sender
}

// NewMulti combines senders. Nil entries are skipped.
func NewMulti(senders ...Sender) *Multi {
	m := &Multi{}
	for _, s := range senders {
		if s != nil {
			m.senders = append(m.senders, s)
		}
	}
	return m
}

// Len returns the number of senders.
func (m *Multi) Len() int { return len(m.senders) }

func (m *Multi) Send(ctx context.Context, r *Report) error {
	var errs []error
	for _, s := range m.senders {
		if err := s.Send(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sender, in reverse order of registration.
func (m *Multi) Close() error {
	var errs []error
	for i := len(m.senders) - 1; i >= 0; i-- {
		if err := m.senders[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
