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
	"gopkg.in/src-d/go-ruler.v0/rule"
)

// Builder is the construction site for rule trees. It canonicalizes
// variables by name, carries the operator registry and creates rules.
// Builders are not synchronized; build the tree once, evaluate anywhere.
type Builder struct {
	vars     map[string]*Variable
	registry *Registry
}

// NewBuilder creates a builder with the default operator namespace.
func NewBuilder() *Builder {
	return &Builder{
		vars:     make(map[string]*Variable),
		registry: NewRegistry(),
	}
}

// Var returns the variable registered under name, creating it on first
// access. Two calls with the same name return the same object.
func (b *Builder) Var(name string) *Variable {
	if v, ok := b.vars[name]; ok {
		return v
	}
	v := NewVariable(name, nil)
	b.vars[name] = v
	return v
}

// Field resolves a dotted path into the canonical variable and its
// cached property chain.
func (b *Builder) Field(path string) rule.Operand {
	head, rest := splitPath(path)
	return b.Var(head).PropertyChain(rest)
}

func splitPath(path string) (string, string) {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}

// LogicalAnd builds a conjunction.
func (b *Builder) LogicalAnd(props ...rule.Proposition) *And {
	return NewAnd(props...)
}

// LogicalOr builds a disjunction.
func (b *Builder) LogicalOr(props ...rule.Proposition) *Or {
	return NewOr(props...)
}

// LogicalNot builds a negation.
func (b *Builder) LogicalNot(prop rule.Proposition) *Not {
	return NewNot(prop)
}

// LogicalXor builds an exclusive disjunction.
func (b *Builder) LogicalXor(props ...rule.Proposition) *Xor {
	return NewXor(props...)
}

// Create wraps a condition and an optional action into a rule.
func (b *Builder) Create(condition rule.Proposition, action interface{}) *rule.Rule {
	return rule.NewRule(condition, action)
}

// Register adds a custom operator namespace. Later registrations shadow
// earlier ones and the built-in table.
func (b *Builder) Register(ns Namespace) {
	b.registry.Register(ns)
}

// Operator dispatches a symbolic operator through the registry.
func (b *Builder) Operator(symbol string, operands ...interface{}) (interface{}, error) {
	return b.registry.Build(symbol, operands...)
}
