package pep

import (
	"fmt"
	"os"
)

// ErrIO is returned by Save/Load when the underlying file operation fails.
var ErrIO = fmt.Errorf("pep: io error")

// Save serializes img and writes it to path, a thin convenience wrapper
// spec.md §6 explicitly calls out as "not part of the core".
func Save(img *Image, path string) error {
	data, err := Serialize(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Load reads path and deserializes it into an Image.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return Deserialize(data)
}
