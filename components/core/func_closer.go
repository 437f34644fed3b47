package core

// FuncCloser adapts a plain function, e.g. a task runner Stop method, to the Closer interface.
type FuncCloser func() error

// Close calls the function.
func (f FuncCloser) Close() error {
	return f()
}
