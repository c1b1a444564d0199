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
	"sort"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrKeyNotDefined is returned when reading a fact that was never set.
	ErrKeyNotDefined = errors.NewKind("context: %q is not defined")
	// ErrKeyFrozen is returned when writing a fact whose shared factory
	// already resolved.
	ErrKeyFrozen = errors.NewKind("context: %q is frozen")
	// ErrNotInvokable is returned when a factory entry is registered
	// without an invokable.
	ErrNotInvokable = errors.NewKind("context: factory for %q is not invokable")
)

// Factory produces a fact value on demand. It receives the context it is
// registered in, so one fact can be derived from others.
type Factory func(ctx *Context) interface{}

// Flag alters how a factory entry behaves on read.
type Flag int

const (
	// SharedFlag memoizes the factory result on first read and freezes
	// the entry.
	SharedFlag Flag = 1 << iota
	// ProtectedFlag stores the factory as a literal value; reading it
	// does not invoke it.
	ProtectedFlag
)

type entry struct {
	value   interface{}
	factory Factory
	flags   Flag
	frozen  bool
}

// Context is the fact store a rule tree is evaluated against. It is not
// internally synchronized; use one Context per goroutine.
type Context struct {
	names   []string
	entries map[string]*entry
}

// NewContext builds a context of raw facts. Keys are registered in sorted
// order so Names is deterministic.
func NewContext(facts map[string]interface{}) *Context {
	ctx := &Context{entries: make(map[string]*entry, len(facts))}

	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ctx.names = append(ctx.names, k)
		ctx.entries[k] = &entry{value: facts[k]}
	}
	return ctx
}

// Set stores a raw fact. Writing over a frozen entry fails with
// ErrKeyFrozen.
func (c *Context) Set(name string, value interface{}) error {
	if e, ok := c.entries[name]; ok {
		if e.frozen {
			return ErrKeyFrozen.New(name)
		}
		e.value = value
		e.factory = nil
		e.flags = 0
		return nil
	}
	c.names = append(c.names, name)
	c.entries[name] = &entry{value: value}
	return nil
}

// SetFactory stores a lazy fact. A SharedFlag factory runs at most once;
// a ProtectedFlag factory is returned as a literal value on read.
func (c *Context) SetFactory(name string, factory Factory, flags Flag) error {
	if factory == nil {
		return ErrNotInvokable.New(name)
	}
	if e, ok := c.entries[name]; ok {
		if e.frozen {
			return ErrKeyFrozen.New(name)
		}
		e.value = nil
		e.factory = factory
		e.flags = flags
		return nil
	}
	c.names = append(c.names, name)
	c.entries[name] = &entry{factory: factory, flags: flags}
	return nil
}

// Get resolves a fact by name. Unknown names fail with ErrKeyNotDefined.
func (c *Context) Get(name string) (interface{}, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, ErrKeyNotDefined.New(name)
	}

	if e.factory == nil {
		return e.value, nil
	}

	if e.flags&ProtectedFlag != 0 {
		return e.factory, nil
	}

	if e.flags&SharedFlag != 0 {
		e.value = e.factory(c)
		e.factory = nil
		e.frozen = true
		return e.value, nil
	}

	return e.factory(c), nil
}

// Has reports whether the name is defined.
func (c *Context) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Frozen reports whether the entry resolved through a shared factory and
// can no longer be written.
func (c *Context) Frozen(name string) bool {
	e, ok := c.entries[name]
	return ok && e.frozen
}

// Names returns every defined fact name in registration order.
func (c *Context) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
