// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rule

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/cockroachdb/apd/v2"
	"github.com/mitchellh/hashstructure"
)

// Set is an ordered, deduplicated collection of values. Construction and
// every algebraic operation are pure; a Set never changes once built.
type Set struct {
	elems []*Value
	index map[uint64][]int
}

// NewSet normalizes a host value into a Set: nil becomes the empty set,
// scalars a singleton, slices and arrays keep their order with nested
// collections recursively converted, and duplicates (by strict equality)
// are dropped.
func NewSet(v interface{}) *Set {
	s := &Set{index: make(map[uint64][]int)}

	switch t := v.(type) {
	case nil:
		return s
	case *Set:
		return t
	case *Value:
		switch t.kind {
		case KindNull:
			return s
		case KindCollection:
			return t.set
		}
		s.add(t)
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			s.add(NewValue(rv.Index(i).Interface()))
		}
	default:
		s.add(NewValue(v))
	}
	return s
}

func newSetOf(vals ...*Value) *Set {
	s := &Set{index: make(map[uint64][]int)}
	for _, v := range vals {
		s.add(v)
	}
	return s
}

func (s *Set) add(v *Value) {
	fp := fingerprint(v)
	for _, i := range s.index[fp] {
		if s.elems[i].EqualTo(v) {
			return
		}
	}
	s.index[fp] = append(s.index[fp], len(s.elems))
	s.elems = append(s.elems, v)
}

// Len returns the number of distinct elements.
func (s *Set) Len() int { return len(s.elems) }

// Values returns the elements in insertion order.
func (s *Set) Values() []*Value {
	out := make([]*Value, len(s.elems))
	copy(out, s.elems)
	return out
}

// Contains reports membership under strict equality. Collection values
// match structurally against nested sets.
func (s *Set) Contains(v *Value) bool {
	fp := fingerprint(v)
	for _, i := range s.index[fp] {
		if s.elems[i].EqualTo(v) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same elements,
// regardless of order.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, v := range s.elems {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Union returns the elements of both sets, keeping s's order first.
func (s *Set) Union(o *Set) *Set {
	out := newSetOf(s.elems...)
	for _, v := range o.elems {
		out.add(v)
	}
	return out
}

// Intersect returns the elements of s that are also in o.
func (s *Set) Intersect(o *Set) *Set {
	out := &Set{index: make(map[uint64][]int)}
	for _, v := range s.elems {
		if o.Contains(v) {
			out.add(v)
		}
	}
	return out
}

// Complement returns the elements of s that are not in o.
func (s *Set) Complement(o *Set) *Set {
	out := &Set{index: make(map[uint64][]int)}
	for _, v := range s.elems {
		if !o.Contains(v) {
			out.add(v)
		}
	}
	return out
}

// SymmetricDifference returns the elements present in exactly one of the
// two sets.
func (s *Set) SymmetricDifference(o *Set) *Set {
	return s.Complement(o).Union(o.Complement(s))
}

// ContainsSubset reports whether every element of o is in s.
func (s *Set) ContainsSubset(o *Set) bool {
	for _, v := range o.elems {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Min returns the smallest element. The empty set yields null; any
// non-numeric element is ErrNotNumber.
func (s *Set) Min() (*Value, error) {
	return s.bound(func(cand, best *Value) bool { return cand.LessThan(best) })
}

// Max returns the largest element. The empty set yields null; any
// non-numeric element is ErrNotNumber.
func (s *Set) Max() (*Value, error) {
	return s.bound(func(cand, best *Value) bool { return cand.GreaterThan(best) })
}

func (s *Set) bound(better func(cand, best *Value) bool) (*Value, error) {
	if len(s.elems) == 0 {
		return NewValue(nil), nil
	}
	var best *Value
	for _, v := range s.elems {
		if !v.IsNumeric() {
			return nil, ErrNotNumber.New(v)
		}
		if best == nil || better(v, best) {
			best = v
		}
	}
	return best, nil
}

func (s *Set) String() string {
	parts := make([]string, len(s.elems))
	for i, v := range s.elems {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// fingerprint returns a hash bucket for dedup and membership lookups.
// Strict equality always confirms a bucket hit, so collisions only cost
// comparisons.
func fingerprint(v *Value) uint64 {
	h, err := hashstructure.Hash(hashKey(v), nil)
	if err != nil {
		return 0
	}
	return h
}

func hashKey(v *Value) interface{} {
	type key struct {
		Kind byte
		Body interface{}
	}
	switch v.kind {
	case KindNull:
		return key{byte(KindNull), ""}
	case KindBool:
		return key{byte(KindBool), v.b}
	case KindInt:
		return key{byte(KindInt), v.i}
	case KindFloat:
		return key{byte(KindFloat), v.f}
	case KindDecimal:
		// Reduce first so 1.0 and 1.00 land in the same bucket.
		reduced, _ := new(apd.Decimal).Reduce(v.d)
		return key{byte(KindDecimal), reduced.Text('G')}
	case KindString:
		return key{byte(KindString), v.s}
	case KindCollection:
		// Order-insensitive: sets compare as sets.
		fps := make([]uint64, 0, v.set.Len())
		for _, e := range v.set.elems {
			fps = append(fps, fingerprint(e))
		}
		sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })
		return key{byte(KindCollection), fps}
	default:
		return key{byte(KindObject), fmt.Sprintf("%T:%v", v.obj, v.obj)}
	}
}
