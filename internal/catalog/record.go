package catalog

import (
	"fmt"
	"hash/fnv"
)

// ID identifies a record by the content hash of its command text.
type ID uint64

// String renders the id as fixed-width hex.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// IDOf returns the identity of a command text.
func IDOf(text string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return ID(h.Sum64())
}

// Template describes an editable command. Mask is printf-like: %s takes the
// next arg verbatim, %c runs the next arg as a shell command and uses its output.
type Template struct {
	Mask string
	Args []string
}

// Record is one command snippet from a catalog.
type Record struct {
	Text        string
	Description string
	Tags        []string
	Template    *Template
	// Source is the catalog file the record was read from.
	Source string
}

// ID returns the record identity.
func (r Record) ID() ID {
	return IDOf(r.Text)
}

// HasTag reports whether the record carries tag.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
