package storage

import "io"

// Storage saves and removes uploaded catalog images.
type Storage interface {
	// Save stores data under key and returns the public URL.
	// key is a unique path such as "components/<id>/<hex>.jpg".
	Save(key string, data io.Reader, contentType string) (url string, err error)

	// Delete removes the file stored under key. Missing files are not an error.
	Delete(key string) error

	// KeyFor maps a public URL produced by Save back to its key.
	KeyFor(url string) (string, bool)
}
