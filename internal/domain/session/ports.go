package session

import "context"

// Repository defines session persistence operations
type Repository interface {
	Add(ctx context.Context, s *Session) error
	Save(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
}

// Locker serializes month processing per session.
// Lock returns a release function; callers must invoke it once.
type Locker interface {
	Lock(ctx context.Context, sessionID string) (release func(), err error)
}
