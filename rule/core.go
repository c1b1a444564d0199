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

// Package rule defines the value model, the fact context and the two
// capabilities every node of a rule tree implements: yielding a boolean
// (Proposition) or yielding a typed value (Operand).
package rule

// Proposition is a node that decides. Logical connectives, comparison and
// other predicate operators, and Rule itself are propositions.
type Proposition interface {
	// Evaluate resolves the node against the given context.
	Evaluate(ctx *Context) (bool, error)
}

// Operand is a node that produces a value. Variables, literals and the
// value-producing operators (arithmetic, string length, set algebra) are
// operands.
type Operand interface {
	// Eval resolves the node to a Value against the given context.
	Eval(ctx *Context) (*Value, error)
}
