package model

import "github.com/asim/chatd/internal/wire"

// AddUser inserts a brand new user. Returns false if id already exists
// (the Controller turns that into a Duplicate error on replay).
func (m *Model) AddUser(u *User) bool {
	if _, exists := m.usersByID[u.ID]; exists {
		return false
	}
	m.usersByID[u.ID] = u
	m.userOrder = append(m.userOrder, u.ID)
	return true
}

// FindUser returns the user and true, or nil and false if unknown.
func (m *Model) FindUser(id wire.UUID) (*User, bool) {
	u, ok := m.usersByID[id]
	return u, ok
}

// Users returns all users in stable insertion order.
func (m *Model) Users() []*User {
	out := make([]*User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		out = append(out, m.usersByID[id])
	}
	return out
}
