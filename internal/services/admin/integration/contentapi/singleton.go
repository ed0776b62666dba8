package contentapi

import (
	"context"
	"fmt"
)

// Identified is implemented by records carrying a server-assigned id.
type Identified interface {
	RecordID() int64
}

// Singleton exposes a list endpoint that holds at most one meaningful row.
type Singleton[T Identified] struct {
	resource *Resource[T]
}

// NewSingleton wraps the collection at path.
func NewSingleton[T Identified](client *Client, path string) *Singleton[T] {
	return &Singleton[T]{resource: NewResource[T](client, path)}
}

// Get returns the first stored record, or nil when none exists.
func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	items, err := s.resource.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	first := items[0]
	return &first, nil
}

// Upsert creates the record when none exists and updates the stored one
// otherwise. It reports whether a record was created.
func (s *Singleton[T]) Upsert(ctx context.Context, form *Form) (Ack, bool, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Ack{}, false, fmt.Errorf("load %s before upsert: %w", s.resource.Path(), err)
	}
	if current == nil || (*current).RecordID() == 0 {
		ack, err := s.resource.Create(ctx, form)
		return ack, true, err
	}
	ack, err := s.resource.Update(ctx, (*current).RecordID(), form)
	return ack, false, err
}
