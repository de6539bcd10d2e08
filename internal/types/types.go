package types

import (
	"fmt"
	"strings"
)

// Kind identifies one measurement. Declaration order is the display order.
type Kind uint8

const (
	Lines Kind = iota
	Words
	Bytes
	Chars
)

// DisplayOrder lists every kind in the order counts are rendered.
var DisplayOrder = []Kind{Lines, Words, Bytes, Chars}

var kindNames = map[Kind]string{
	Lines: "lines",
	Words: "words",
	Bytes: "bytes",
	Chars: "chars",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind from its lowercase name (as used in config files).
func ParseKind(name string) (Kind, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for _, k := range DisplayOrder {
		if kindNames[k] == clean {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown measurement kind: %q", name)
}

// Set is an immutable set of measurement kinds.
type Set uint8

// DefaultSet is used when nothing was requested.
const DefaultSet = Set(1<<Lines | 1<<Words | 1<<Bytes)

func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << k
	}

	return s
}

func (s Set) Has(k Kind) bool {
	return s&(1<<k) != 0
}

func (s Set) Empty() bool {
	return s == 0
}

// With returns a copy of s that also contains k.
func (s Set) With(k Kind) Set {
	return s | 1<<k
}

// Kinds returns the members of s in display order.
func (s Set) Kinds() []Kind {
	kinds := make([]Kind, 0, len(DisplayOrder))
	for _, k := range DisplayOrder {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

func (s Set) String() string {
	names := make([]string, 0, len(DisplayOrder))
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}

	return "{" + strings.Join(names, ",") + "}"
}

// ParseSet builds a set from kind names.
func ParseSet(names []string) (Set, error) {
	var s Set

	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return 0, err
		}

		s = s.With(k)
	}

	return s, nil
}
