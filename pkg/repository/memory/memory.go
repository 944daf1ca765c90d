package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Repository is an in-memory implementation of interfaces.Repository,
// used for tests and local development.
type Repository struct {
	users  *userRepository
	events *eventRepository
}

// New creates a new in-memory repository
func New() *Repository {
	users := newUserRepository()
	return &Repository{
		users:  users,
		events: newEventRepository(users),
	}
}

// Users returns the user repository
func (x *Repository) Users() interfaces.UserRepository {
	return x.users
}

// Events returns the event repository
func (x *Repository) Events() interfaces.EventRepository {
	return x.events
}

// Close is a no-op for the in-memory backend
func (x *Repository) Close() error {
	return nil
}
