package mirlower

import (
	"errors"
	"fmt"

	"bodymir/internal/langitems"
)

// ErrorKind enumerates the failure taxonomy of spec.md §7. Kinds are
// grouped in comments the same way the spec groups them (Structural /
// Environmental / Capability / Control-flow / Internal) - the Kind space
// itself is flat, since Go errors compare by sentinel value rather than
// by a nested sum type the way the spec's source language expresses it.
type ErrorKind uint8

const (
	// Structural
	ErrIncompleteExpr ErrorKind = iota
	ErrRecordLiteralWithoutPath
	ErrUnresolvedField
	ErrUnresolvedName
	ErrUnresolvedMethod
	ErrUnresolvedLabel
	ErrMissingFunctionDefinition
	ErrTraitFunctionDefinition

	// Environmental
	ErrLangItemNotFound
	ErrConstEvalError
	ErrLayoutError
	ErrTypeMismatch

	// Capability
	ErrNotSupported

	// Control-flow
	ErrContinueWithoutLoop
	ErrBreakWithoutLoop
	ErrLoop

	// Internal
	ErrTypeError
	ErrImplementationError

	// Place-mode violation.
	ErrMutatingRvalue
)

func (k ErrorKind) String() string {
	names := [...]string{
		"IncompleteExpr", "RecordLiteralWithoutPath", "UnresolvedField",
		"UnresolvedName", "UnresolvedMethod", "UnresolvedLabel",
		"MissingFunctionDefinition", "TraitFunctionDefinition",
		"LangItemNotFound", "ConstEvalError", "LayoutError", "TypeMismatch",
		"NotSupported",
		"ContinueWithoutLoop", "BreakWithoutLoop", "Loop",
		"TypeError", "ImplementationError",
		"MutatingRvalue",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Error is the single tagged error value every lowering failure surfaces
// as (spec.md §7: "All failures surface as a tagged error value; none are
// caught internally"). Propagation is monotone: the first Error discards
// the in-progress Body and returns, never partially.
type Error struct {
	Kind ErrorKind

	// Msg carries free-form detail (NotSupported's reason, UnresolvedName's
	// text, TypeError/ImplementationError's reason).
	Msg string

	Trait string // ErrTraitFunctionDefinition
	Item  langitems.Item
	Wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotSupported:
		return fmt.Sprintf("not supported: %s", e.Msg)
	case ErrUnresolvedName:
		return fmt.Sprintf("unresolved name: %s", e.Msg)
	case ErrTraitFunctionDefinition:
		return fmt.Sprintf("missing function definition: trait %s function %s has no body", e.Trait, e.Msg)
	case ErrLangItemNotFound:
		return fmt.Sprintf("lang item not found: %s", e.Item)
	case ErrTypeError, ErrImplementationError:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	default:
		if e.Wrapped != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Wrapped)
		}
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		}
		return e.Kind.String()
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, mirlower.KindError(ErrNotSupported)).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// KindError builds a bare sentinel of the given kind, for errors.Is checks.
func KindError(k ErrorKind) error { return &Error{Kind: k} }

func notSupported(reason string) error { return &Error{Kind: ErrNotSupported, Msg: reason} }

func unresolvedName(text string) error { return &Error{Kind: ErrUnresolvedName, Msg: text} }

func implementationError(reason string) error {
	return &Error{Kind: ErrImplementationError, Msg: reason}
}

func typeError(reason string) error { return &Error{Kind: ErrTypeError, Msg: reason} }

func traitFunctionDefinition(trait, name string) error {
	return &Error{Kind: ErrTraitFunctionDefinition, Trait: trait, Msg: name}
}

func langItemNotFound(item langitems.Item) error {
	return &Error{Kind: ErrLangItemNotFound, Item: item}
}
