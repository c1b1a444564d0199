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

// Union produces the set union of its two operands. Scalar operands are
// treated as singleton sets.
type Union struct {
	BinaryExpression
}

// NewUnion creates a union operator.
func NewUnion(left, right rule.Operand) *Union {
	return &Union{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Union) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(l.Set().Union(r.Set())), nil
}

// Intersect produces the set intersection of its two operands.
type Intersect struct {
	BinaryExpression
}

// NewIntersect creates an intersect operator.
func NewIntersect(left, right rule.Operand) *Intersect {
	return &Intersect{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Intersect) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(l.Set().Intersect(r.Set())), nil
}

// Complement produces the elements of the left side not present in the
// right side.
type Complement struct {
	BinaryExpression
}

// NewComplement creates a complement operator.
func NewComplement(left, right rule.Operand) *Complement {
	return &Complement{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Complement) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(l.Set().Complement(r.Set())), nil
}

// SymmetricDifference produces the elements present in exactly one of the
// two operands.
type SymmetricDifference struct {
	BinaryExpression
}

// NewSymmetricDifference creates a symmetricDifference operator.
func NewSymmetricDifference(left, right rule.Operand) *SymmetricDifference {
	return &SymmetricDifference{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *SymmetricDifference) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(l.Set().SymmetricDifference(r.Set())), nil
}

// ContainsSubset holds when every element of the right side is in the
// left side.
type ContainsSubset struct {
	BinaryExpression
	negate bool
}

// NewContainsSubset creates a containsSubset predicate.
func NewContainsSubset(left, right rule.Operand) *ContainsSubset {
	return &ContainsSubset{BinaryExpression: BinaryExpression{left, right}}
}

// NewDoesNotContainSubset creates the negated containsSubset predicate.
func NewDoesNotContainSubset(left, right rule.Operand) *ContainsSubset {
	return &ContainsSubset{BinaryExpression: BinaryExpression{left, right}, negate: true}
}

// Evaluate implements rule.Proposition.
func (e *ContainsSubset) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.Set().ContainsSubset(r.Set()) != e.negate, nil
}

// SetContains holds when the right side is a member of the left side
// collection.
type SetContains struct {
	BinaryExpression
	negate bool
}

// NewSetContains creates a setContains predicate.
func NewSetContains(left, right rule.Operand) *SetContains {
	return &SetContains{BinaryExpression: BinaryExpression{left, right}}
}

// NewSetDoesNotContain creates the negated setContains predicate.
func NewSetDoesNotContain(left, right rule.Operand) *SetContains {
	return &SetContains{BinaryExpression: BinaryExpression{left, right}, negate: true}
}

// Evaluate implements rule.Proposition.
func (e *SetContains) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.Set().Contains(r) != e.negate, nil
}
