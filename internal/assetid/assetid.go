package assetid

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Kind discriminates the two identifier forms an asset can carry.
type Kind int

const (
	// KindRemote identifies an asset by the numeric ID the hosting service
	// assigned to it.
	KindRemote Kind = iota
	// KindLocal identifies an asset by a relative path inside a local
	// content directory.
	KindLocal
)

const (
	remoteScheme = "remoteasset://"
	localScheme  = "localasset://"
)

// ErrUnrecognized reports a string that matches neither identifier scheme.
var ErrUnrecognized = errors.New("unrecognized asset identifier")

// ID is the identifier assigned to an uploaded asset. It is either a numeric
// remote ID or a slash-separated relative path, and never changes once set.
type ID struct {
	kind   Kind
	remote uint64
	local  string
}

// Remote builds an identifier for an asset hosted by the remote service.
func Remote(id uint64) ID {
	return ID{kind: KindRemote, remote: id}
}

// Local builds an identifier for an asset written into a local content
// directory. The path is normalized to forward slashes so rendered output is
// identical across platforms.
func Local(relPath string) ID {
	return ID{kind: KindLocal, local: path.Clean(strings.ReplaceAll(relPath, "\\", "/"))}
}

// Kind reports which identifier form this value holds.
func (id ID) Kind() Kind { return id.kind }

// RemoteID returns the numeric remote ID and whether this identifier holds one.
func (id ID) RemoteID() (uint64, bool) {
	if id.kind != KindRemote {
		return 0, false
	}
	return id.remote, true
}

// LocalPath returns the relative content path and whether this identifier
// holds one.
func (id ID) LocalPath() (string, bool) {
	if id.kind != KindLocal {
		return "", false
	}
	return id.local, true
}

// IsZero reports whether the identifier was never assigned.
func (id ID) IsZero() bool {
	return id.kind == KindRemote && id.remote == 0 && id.local == ""
}

// String renders the identifier in the URI form embedded in generated code.
func (id ID) String() string {
	switch id.kind {
	case KindLocal:
		return localScheme + id.local
	default:
		return remoteScheme + strconv.FormatUint(id.remote, 10)
	}
}

// MarshalText implements encoding.TextMarshaler so identifiers round-trip
// through the TOML manifest in their URI form.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse reads an identifier back from its URI rendering. The two schemes are
// disjoint, so a rendered identifier can never be read back as the other
// variant.
func Parse(value string) (ID, error) {
	switch {
	case strings.HasPrefix(value, remoteScheme):
		raw := strings.TrimPrefix(value, remoteScheme)
		numeric, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("parse remote asset id %q: %w", raw, err)
		}
		return Remote(numeric), nil
	case strings.HasPrefix(value, localScheme):
		rel := strings.TrimPrefix(value, localScheme)
		if rel == "" {
			return ID{}, fmt.Errorf("parse local asset path: empty path in %q", value)
		}
		return Local(rel), nil
	default:
		return ID{}, fmt.Errorf("%w: %q", ErrUnrecognized, value)
	}
}
