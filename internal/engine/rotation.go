package engine

import (
	"strings"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Rotation is the cyclic order of users still eligible to move in the
// current game. The zero value is an empty rotation that has not started.
type Rotation struct {
	users   []model.User
	current int // -1 before the first Advance
}

// NewRotation creates a rotation over a copy of users
func NewRotation(users []model.User) *Rotation {
	r := &Rotation{current: -1}
	for _, u := range users {
		r.Add(u)
	}
	return r
}

// Add appends a user, or refreshes an existing entry with the same name
func (r *Rotation) Add(user model.User) {
	if i := r.indexOf(user.Name); i >= 0 {
		r.users[i] = user
		return
	}
	if r.users == nil {
		r.current = -1
	}
	r.users = append(r.users, user)
}

// Remove drops the named user; the user after it becomes next in line
func (r *Rotation) Remove(name string) bool {
	i := r.indexOf(name)
	if i < 0 {
		return false
	}
	if i <= r.current {
		r.current--
	}
	r.users = append(r.users[:i:i], r.users[i+1:]...)
	if len(r.users) == 0 {
		r.current = -1
	}
	return true
}

// Advance moves to the next user and returns them
func (r *Rotation) Advance() (model.User, bool) {
	if len(r.users) == 0 {
		return model.User{}, false
	}
	r.current = (r.current + 1) % len(r.users)
	return r.users[r.current], true
}

// Current returns the user whose turn it is
func (r *Rotation) Current() (model.User, bool) {
	if r.current < 0 || r.current >= len(r.users) {
		return model.User{}, false
	}
	return r.users[r.current], true
}

// Contains reports whether the named user is in the rotation
func (r *Rotation) Contains(name string) bool {
	return r.indexOf(name) >= 0
}

// Len returns the number of users in the rotation
func (r *Rotation) Len() int {
	return len(r.users)
}

// Names returns the user names in rotation order
func (r *Rotation) Names() []string {
	names := make([]string, len(r.users))
	for i, u := range r.users {
		names[i] = u.Name
	}
	return names
}

// String renders the rotation with the current user starred
func (r *Rotation) String() string {
	parts := make([]string, len(r.users))
	for i, u := range r.users {
		if i == r.current {
			parts[i] = "*" + u.Name
		} else {
			parts[i] = u.Name
		}
	}
	return strings.Join(parts, ",")
}

func (r *Rotation) indexOf(name string) int {
	for i, u := range r.users {
		if u.Name == name {
			return i
		}
	}
	return -1
}
