// Package langitems is the lang-item table spec.md §6 depends on:
// "map each lang item to a definition id; the core depends on
// IntoIterator::into_iter, Iterator::next, Option::Some".
package langitems

import "bodymir/internal/hir"

// Item names a well-known, compiler-recognized definition.
type Item uint8

const (
	// IntoIterIntoIter is IntoIterator::into_iter, the call a `for` loop's
	// desugaring starts with.
	IntoIterIntoIter Item = iota
	// IteratorNext is Iterator::next, called once per loop iteration.
	IteratorNext
	// OptionSome is the Some(x) constructor `for`'s desugaring pattern-matches.
	OptionSome
)

func (i Item) String() string {
	switch i {
	case IntoIterIntoIter:
		return "IntoIterator::into_iter"
	case IteratorNext:
		return "Iterator::next"
	case OptionSome:
		return "Option::Some"
	default:
		return "unknown-lang-item"
	}
}

// Table maps lang items to their definitions.
type Table interface {
	Lookup(item Item) (hir.DefID, bool)
}
