package layered

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every KeyError.
var ErrKeyNotFound = errors.New("key not found")

// Scope identifies which layers were searched before a KeyError was raised.
type Scope int

const (
	// ScopeAll means the key was absent from every layer (Get).
	ScopeAll Scope = iota
	// ScopePrimary means the key was absent from the primary layer (Delete),
	// whether or not a deeper layer holds it.
	ScopePrimary
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopePrimary:
		return "primary"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// KeyError reports a missing key together with the scope that was searched.
type KeyError struct {
	Key   any
	Scope Scope
}

func (e *KeyError) Error() string {
	if e.Scope == ScopePrimary {
		return fmt.Sprintf("key not found in primary layer: %v", e.Key)
	}
	return fmt.Sprintf("key not found: %v", e.Key)
}

// Unwrap enables errors.Is(err, ErrKeyNotFound).
func (e *KeyError) Unwrap() error {
	return ErrKeyNotFound
}
