package core

// Closer releases resources held by resolvers, databases and DB clients.
type Closer interface {
	// Close the resource.
	Close() error
}
