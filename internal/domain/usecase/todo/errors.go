package todo

import "todo-api/internal/domain/gateway/db"

// ErrNotFound is returned when the id does not resolve to any todo, deleted or not.
var ErrNotFound = db.ErrTodoNotFound

// ValidationError reports a request the client has to fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
