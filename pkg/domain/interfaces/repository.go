package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Users() UserRepository
	Events() EventRepository

	Close() error
}
