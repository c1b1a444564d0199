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
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

// ErrBetweenBounds is returned when the right side of a between is not a
// two-element collection.
var ErrBetweenBounds = errors.NewKind("between: bounds must be a collection of two elements, got %s")

// EqualTo is the strict equality predicate.
type EqualTo struct {
	BinaryExpression
}

// NewEqualTo creates an eq comparison.
func NewEqualTo(left, right rule.Operand) *EqualTo {
	return &EqualTo{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *EqualTo) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.EqualTo(r), nil
}

// NotEqualTo is the negation of EqualTo.
type NotEqualTo struct {
	BinaryExpression
}

// NewNotEqualTo creates a ne comparison.
func NewNotEqualTo(left, right rule.Operand) *NotEqualTo {
	return &NotEqualTo{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *NotEqualTo) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return !l.EqualTo(r), nil
}

// SameAs is the identity predicate. It behaves exactly like EqualTo; both
// symbols exist in the operator table.
type SameAs struct {
	BinaryExpression
}

// NewSameAs creates an is comparison.
func NewSameAs(left, right rule.Operand) *SameAs {
	return &SameAs{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *SameAs) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.SameAs(r), nil
}

// NotSameAs is the negation of SameAs.
type NotSameAs struct {
	BinaryExpression
}

// NewNotSameAs creates an isNot comparison.
func NewNotSameAs(left, right rule.Operand) *NotSameAs {
	return &NotSameAs{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *NotSameAs) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return !l.SameAs(r), nil
}

// GreaterThan is the strict ordering predicate.
type GreaterThan struct {
	BinaryExpression
}

// NewGreaterThan creates a gt comparison.
func NewGreaterThan(left, right rule.Operand) *GreaterThan {
	return &GreaterThan{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *GreaterThan) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.GreaterThan(r), nil
}

// GreaterThanOrEqualTo holds when the left side is not less than the
// right side.
type GreaterThanOrEqualTo struct {
	BinaryExpression
}

// NewGreaterThanOrEqualTo creates a gte comparison.
func NewGreaterThanOrEqualTo(left, right rule.Operand) *GreaterThanOrEqualTo {
	return &GreaterThanOrEqualTo{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *GreaterThanOrEqualTo) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return !l.LessThan(r), nil
}

// LessThan is the strict ordering predicate.
type LessThan struct {
	BinaryExpression
}

// NewLessThan creates an lt comparison.
func NewLessThan(left, right rule.Operand) *LessThan {
	return &LessThan{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *LessThan) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.LessThan(r), nil
}

// LessThanOrEqualTo holds when the left side is not greater than the
// right side.
type LessThanOrEqualTo struct {
	BinaryExpression
}

// NewLessThanOrEqualTo creates an lte comparison.
func NewLessThanOrEqualTo(left, right rule.Operand) *LessThanOrEqualTo {
	return &LessThanOrEqualTo{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *LessThanOrEqualTo) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return !l.GreaterThan(r), nil
}

// In is strict membership of the left side in the right side collection.
type In struct {
	BinaryExpression
}

// NewIn creates an in membership test.
func NewIn(left, right rule.Operand) *In {
	return &In{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition. The right side must be a
// collection.
func (e *In) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	if r.Kind() != rule.KindCollection {
		return false, ErrNotCollection.New("in", r)
	}
	return r.Set().Contains(l), nil
}

// NotIn is the negation of In.
type NotIn struct {
	BinaryExpression
}

// NewNotIn creates a notIn membership test.
func NewNotIn(left, right rule.Operand) *NotIn {
	return &NotIn{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *NotIn) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	if r.Kind() != rule.KindCollection {
		return false, ErrNotCollection.New("notIn", r)
	}
	return !r.Set().Contains(l), nil
}

// Between holds when the left side lies inside the inclusive [lo, hi]
// range given as a two-element collection on the right.
type Between struct {
	BinaryExpression
}

// NewBetween creates a between range test.
func NewBetween(val, bounds rule.Operand) *Between {
	return &Between{BinaryExpression{val, bounds}}
}

// Evaluate implements rule.Proposition.
func (e *Between) Evaluate(ctx *rule.Context) (bool, error) {
	v, b, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	if b.Kind() != rule.KindCollection {
		return false, ErrBetweenBounds.New(b)
	}
	bounds := b.Items()
	if len(bounds) != 2 {
		return false, ErrBetweenBounds.New(b)
	}
	lo, hi := bounds[0], bounds[1]
	return !v.LessThan(lo) && !v.GreaterThan(hi), nil
}
