// Package players is the controller's directory of connected players.
package players

import (
	"log/slog"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Entry is one connected player and the queue to their handler
type Entry struct {
	User   model.User
	Outbox *model.Outbox
}

// Registry holds connected players in connection order. It is owned by the
// controller's goroutine and is not safe for concurrent use.
type Registry struct {
	entries []Entry
	palette *Palette
	logger  *slog.Logger
}

// New creates an empty registry using the default palette
func New(logger *slog.Logger) *Registry {
	return NewWithPalette(NewPalette(), logger)
}

// NewWithPalette creates an empty registry drawing colors from palette
func NewWithPalette(palette *Palette, logger *slog.Logger) *Registry {
	return &Registry{
		palette: palette,
		logger:  logger,
	}
}

// Add registers name with its outbox, replacing any existing entry for the
// same name. The color assigned to a name never changes.
func (r *Registry) Add(name string, outbox *model.Outbox) Entry {
	r.Remove(name)
	entry := Entry{
		User:   model.User{Name: name, Color: r.palette.Assign(name)},
		Outbox: outbox,
	}
	r.entries = append(r.entries, entry)
	r.logger.Debug("player added",
		slog.String("name", name),
		slog.String("color", entry.User.Color.Hex()),
		slog.Int("players", r.Len()))
	return entry
}

// Remove drops name, reporting whether it was present
func (r *Registry) Remove(name string) bool {
	for i, e := range r.entries {
		if e.User.Name == name {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			r.logger.Debug("player removed", slog.String("name", name), slog.Int("players", r.Len()))
			return true
		}
	}
	return false
}

// Lookup returns the entry for name
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.User.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the entries in connection order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Users returns the registered users in connection order
func (r *Registry) Users() []model.User {
	out := make([]model.User, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.User
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) IsEmpty() bool {
	return len(r.entries) == 0
}
