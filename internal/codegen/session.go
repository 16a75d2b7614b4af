package codegen

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

// Session holds the state shared by everything generated for one
// program: the struct shapes already given a typedef and the counters of
// generated identifiers. A session must not be shared between
// concurrent compilations.
type Session struct {
	structs  map[string]string // shape key -> typedef name
	ids      map[string]int    // prefix -> last suffix
	reserved *set.Set[string]  // C names a program name must not take
}

// NewSession returns an empty session. Names listed in reserved (in
// addition to C keywords and runtime names) are renamed when a program
// declares them.
func NewSession(reserved ...string) *Session {
	s := &Session{
		structs:  make(map[string]string),
		ids:      make(map[string]int),
		reserved: set.From(cReserved),
	}
	s.reserved.InsertSlice(reserved)
	return s
}

// NewID returns prefix_N, with N counting from 1 for each prefix.
func (s *Session) NewID(prefix string) string {
	s.ids[prefix]++
	return fmt.Sprintf("%s_%d", prefix, s.ids[prefix])
}

// Reserve adds names a program name must not take.
func (s *Session) Reserve(names ...string) {
	s.reserved.InsertSlice(names)
}

// NumStructs returns the number of struct typedefs emitted so far.
func (s *Session) NumStructs() int {
	return len(s.structs)
}

func (s *Session) lookupStruct(key string) (string, bool) {
	name, ok := s.structs[key]
	return name, ok
}

func (s *Session) addStruct(key, name string) {
	s.structs[key] = name
}
