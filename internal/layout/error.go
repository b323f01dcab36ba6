package layout

import (
	"fmt"
	"strings"

	"bodymir/internal/types"
)

// ErrorKind enumerates the ways a layout computation can fail.
type ErrorKind uint8

const (
	// ErrRecursiveUnsized marks a type with infinite size (a struct that
	// directly or indirectly contains itself by value).
	ErrRecursiveUnsized ErrorKind = iota + 1
	// ErrUnsized marks a slice-tailed array queried for a concrete size.
	ErrUnsized
)

// Error represents a failure computing the layout of a type.
type Error struct {
	Kind  ErrorKind
	Type  types.TypeID
	Cycle []types.TypeID
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrRecursiveUnsized:
		parts := make([]string, 0, len(e.Cycle))
		for _, id := range e.Cycle {
			parts = append(parts, fmt.Sprintf("type#%d", id))
		}
		return fmt.Sprintf("recursive type has infinite size: %s", strings.Join(parts, " -> "))
	case ErrUnsized:
		return fmt.Sprintf("type#%d is unsized", e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}
