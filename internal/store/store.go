// Package store provides the key/value document store the repositories
// persist through. Each record collection is one JSON document under one key;
// the store itself knows nothing about record shapes.
package store

// Store is a synchronous key/value document store scoped to one database.
type Store interface {
	// Get returns the document stored under key. The second return value is
	// false when no document exists for the key.
	Get(key string) (string, bool, error)

	// Set stores the document under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes the document under key. Removing an absent key is not
	// an error.
	Remove(key string) error
}
