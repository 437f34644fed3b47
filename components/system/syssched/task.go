package syssched

// Task is a single unit of periodic work, e.g. a service discovery round.
type Task interface {
	// Run executes a single operational loop.
	Run() error
}

// ErrorHandler handles errors returned by the task.
type ErrorHandler interface {
	// HandleError handles error.
	HandleError(err error)
}
