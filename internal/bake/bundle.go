// Package bake stores imported collision, skeleton and animation data in a
// msgpack bundle so games can skip model import at startup.
package bake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Version is the bundle layout written by this package.
const Version = 1

// ErrVersion is returned when a bundle was written with another layout.
var ErrVersion = errors.New("unsupported bundle version")

type Bundle struct {
	Version    int               `msgpack:"version"`
	Source     string            `msgpack:"source,omitempty"`
	Polyhedra  []BakedPolyhedron `msgpack:"polyhedra"`
	Armature   *BakedArmature    `msgpack:"armature,omitempty"`
	Animations []BakedAnimation  `msgpack:"animations"`
}

// NewBundle returns an empty bundle at the current version.
func NewBundle(source string) Bundle {
	return Bundle{Version: Version, Source: source}
}

func Encode(w io.Writer, b Bundle) error {
	if err := msgpack.NewEncoder(w).Encode(&b); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Version != Version {
		return Bundle{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, b.Version, Version)
	}
	return b, nil
}

// WriteFile writes b to path, creating parent directories. The file is replaced
// only once the whole bundle has been written.
func WriteFile(path string, b Bundle) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func ReadFile(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, err
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
