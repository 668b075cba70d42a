// Package storage abstracts where uploaded files live. The core only needs
// save/remove; durability and timeouts are the backend's concern.
package storage

import "io"

type Store interface {
	// Save writes the file under name and returns its public path.
	Save(name string, r io.Reader) (string, error)
	Remove(name string) error
}
