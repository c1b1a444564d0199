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

package expression

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

// Variable is a named reference into the fact context, with a default
// value used when the name is not defined. A nameless variable always
// yields its default.
type Variable struct {
	ops
	name  string
	def   *rule.Value
	props map[string]*VariableProperty
}

// NewVariable creates a variable. An empty name makes it default-only.
func NewVariable(name string, def interface{}) *Variable {
	v := &Variable{
		name:  name,
		def:   rule.NewValue(def),
		props: make(map[string]*VariableProperty),
	}
	v.ops.self = v
	return v
}

// Name returns the variable's fact name.
func (v *Variable) Name() string { return v.name }

// Eval implements rule.Operand: the context value when the name is
// defined, the default otherwise.
func (v *Variable) Eval(ctx *rule.Context) (*rule.Value, error) {
	if v.name == "" || ctx == nil || !ctx.Has(v.name) {
		return v.def, nil
	}
	raw, err := ctx.Get(v.name)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(raw), nil
}

// Property returns the property node for the given name, creating it on
// first access. Repeated calls return the same node, so property chains
// keep their identity across a builder's lifetime.
func (v *Variable) Property(name string) *VariableProperty {
	if p, ok := v.props[name]; ok {
		return p
	}
	p := NewVariableProperty(v, name, nil)
	v.props[name] = p
	return p
}

// VariableProperty navigates one step into its parent's resolved value:
// method first, then struct field, then keyed index, then map key, and
// finally the default.
type VariableProperty struct {
	ops
	parent rule.Operand
	name   string
	def    *rule.Value
	props  map[string]*VariableProperty
}

// NewVariableProperty creates a property accessor over any operand.
func NewVariableProperty(parent rule.Operand, name string, def interface{}) *VariableProperty {
	p := &VariableProperty{
		parent: parent,
		name:   name,
		def:    rule.NewValue(def),
		props:  make(map[string]*VariableProperty),
	}
	p.ops.self = p
	return p
}

// Name returns the property name.
func (p *VariableProperty) Name() string { return p.name }

// Property chains another navigation step, cached by name.
func (p *VariableProperty) Property(name string) *VariableProperty {
	if c, ok := p.props[name]; ok {
		return c
	}
	c := NewVariableProperty(p, name, nil)
	p.props[name] = c
	return c
}

// Eval implements rule.Operand.
func (p *VariableProperty) Eval(ctx *rule.Context) (*rule.Value, error) {
	if p.name == "" {
		return p.def, nil
	}
	parent, err := p.parent.Eval(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := navigate(parent.Raw(), p.name)
	if !ok {
		return p.def, nil
	}
	return rule.NewValue(raw), nil
}

// navigate resolves one property step over a raw host value with the
// method > field > index > map-key priority. Bare funcs are opaque
// scalars and are never navigated.
func navigate(v interface{}, name string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		return nil, false
	}

	if out, ok := callMethod(rv, name); ok {
		return out, true
	}

	elem := rv
	for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return nil, false
		}
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Struct:
		if out, ok := fieldByName(elem, name); ok {
			return out, true
		}
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < elem.Len() {
			return elem.Index(i).Interface(), true
		}
	case reflect.Map:
		if out, ok := mapIndex(elem, name); ok {
			return out, true
		}
	}

	return nil, false
}

func callMethod(rv reflect.Value, name string) (interface{}, bool) {
	for _, candidate := range []string{name, exported(name)} {
		m := rv.MethodByName(candidate)
		if !m.IsValid() {
			continue
		}
		t := m.Type()
		if t.NumIn() != 0 || t.NumOut() == 0 {
			continue
		}
		return m.Call(nil)[0].Interface(), true
	}
	return nil, false
}

func fieldByName(elem reflect.Value, name string) (interface{}, bool) {
	for _, candidate := range []string{name, exported(name)} {
		f := elem.FieldByName(candidate)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	}
	return nil, false
}

func mapIndex(elem reflect.Value, name string) (interface{}, bool) {
	keyType := elem.Type().Key()
	var key reflect.Value
	switch keyType.Kind() {
	case reflect.String:
		key = reflect.ValueOf(name)
	case reflect.Interface:
		key = reflect.ValueOf(name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return nil, false
		}
		key = reflect.ValueOf(i).Convert(keyType)
	default:
		return nil, false
	}

	out := elem.MapIndex(key)
	if !out.IsValid() {
		return nil, false
	}
	return out.Interface(), true
}

// exported upper-cases the first rune so "age" can find Age.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// PropertyChain resolves a dotted path into a chain of cached property
// nodes rooted at the variable.
func (v *Variable) PropertyChain(path string) rule.Operand {
	if path == "" {
		return v
	}
	parts := strings.Split(path, ".")
	node := v.Property(parts[0])
	for _, part := range parts[1:] {
		node = node.Property(part)
	}
	return node
}
