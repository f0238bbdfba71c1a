package registry

import (
	"sync"

	usererrors "hotelier/internal/users/errors"
	"hotelier/pkg/model"
)

// UserDirectory is the in-memory user store, indexed by ID and by email.
// Email keys are stored exactly as registered (already trimmed by the
// service) and matched case-sensitively.
type UserDirectory interface {
	Add(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Update(id string, updated *model.User) error
	Count() int
}

type userDirectory struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

func NewUserDirectory() UserDirectory {
	return &userDirectory{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func (d *userDirectory) Add(user *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byEmail[user.Email]; taken {
		return usererrors.ErrDuplicateEmail
	}
	d.byID[user.ID] = user
	d.byEmail[user.Email] = user.ID
	return nil
}

func (d *userDirectory) GetByID(id string) (*model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, exists := d.byID[id]
	if !exists {
		return nil, usererrors.ErrNotFound
	}
	return user, nil
}

func (d *userDirectory) GetByEmail(email string) (*model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, exists := d.byEmail[email]
	if !exists {
		return nil, usererrors.ErrNotFound
	}
	return d.byID[id], nil
}

// Update replaces the stored user. An email change is checked against the
// index and re-keyed atomically; a change to an email held by another user
// fails with ErrDuplicateEmail and leaves the stored user untouched.
func (d *userDirectory) Update(id string, updated *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, exists := d.byID[id]
	if !exists {
		return usererrors.ErrNotFound
	}

	if updated.Email != current.Email {
		if ownerID, taken := d.byEmail[updated.Email]; taken && ownerID != id {
			return usererrors.ErrDuplicateEmail
		}
		delete(d.byEmail, current.Email)
		d.byEmail[updated.Email] = id
	}

	*current = *updated
	current.ID = id
	return nil
}

func (d *userDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
