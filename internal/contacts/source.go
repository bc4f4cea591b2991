// Package contacts supplies recipient suggestions from the device contact
// list. The source is read-only and optional: the user may deny the contacts
// permission, in which case the list is simply empty.
package contacts

import (
	"context"
	"log/slog"
)

// Contact is a single address-book entry.
type Contact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Source provides the contact list.
type Source interface {
	List(ctx context.Context) ([]Contact, error)
}

// StaticSource serves a fixed contact list, standing in for the platform
// address book. With Denied set it behaves like a rejected permission
// request: an empty list, not an error.
type StaticSource struct {
	logger   *slog.Logger
	contacts []Contact
	Denied   bool
}

// NewStaticSource creates a source serving the given contacts.
func NewStaticSource(logger *slog.Logger, contacts []Contact) *StaticSource {
	return &StaticSource{logger: logger, contacts: contacts}
}

func (s *StaticSource) List(_ context.Context) ([]Contact, error) {
	if s.Denied {
		s.logger.Info("Contact permission denied, returning empty list")
		return []Contact{}, nil
	}
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out, nil
}
