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

// ops is embedded by every operand node (variables, properties, literals
// and chains) to provide the fluent operator surface: each method builds
// the corresponding operator with the node as its left operand.
type ops struct {
	self rule.Operand
}

// Chain wraps a value-producing operator so fluent construction can keep
// going from its result.
type Chain struct {
	ops
	op rule.Operand
}

func chain(op rule.Operand) *Chain {
	c := &Chain{op: op}
	c.ops.self = c
	return c
}

// Eval implements rule.Operand.
func (c *Chain) Eval(ctx *rule.Context) (*rule.Value, error) {
	return c.op.Eval(ctx)
}

// EqualTo builds an eq predicate with this node as left operand.
func (o ops) EqualTo(v interface{}) rule.Proposition {
	return NewEqualTo(o.self, operandOf(v))
}

// NotEqualTo builds a ne predicate.
func (o ops) NotEqualTo(v interface{}) rule.Proposition {
	return NewNotEqualTo(o.self, operandOf(v))
}

// SameAs builds an is predicate.
func (o ops) SameAs(v interface{}) rule.Proposition {
	return NewSameAs(o.self, operandOf(v))
}

// NotSameAs builds an isNot predicate.
func (o ops) NotSameAs(v interface{}) rule.Proposition {
	return NewNotSameAs(o.self, operandOf(v))
}

// GreaterThan builds a gt predicate.
func (o ops) GreaterThan(v interface{}) rule.Proposition {
	return NewGreaterThan(o.self, operandOf(v))
}

// GreaterThanOrEqualTo builds a gte predicate.
func (o ops) GreaterThanOrEqualTo(v interface{}) rule.Proposition {
	return NewGreaterThanOrEqualTo(o.self, operandOf(v))
}

// LessThan builds an lt predicate.
func (o ops) LessThan(v interface{}) rule.Proposition {
	return NewLessThan(o.self, operandOf(v))
}

// LessThanOrEqualTo builds an lte predicate.
func (o ops) LessThanOrEqualTo(v interface{}) rule.Proposition {
	return NewLessThanOrEqualTo(o.self, operandOf(v))
}

// In builds an in membership predicate.
func (o ops) In(v interface{}) rule.Proposition {
	return NewIn(o.self, operandOf(v))
}

// NotIn builds a notIn membership predicate.
func (o ops) NotIn(v interface{}) rule.Proposition {
	return NewNotIn(o.self, operandOf(v))
}

// Between builds an inclusive range predicate.
func (o ops) Between(lo, hi interface{}) rule.Proposition {
	return NewBetween(o.self, NewLiteral([]interface{}{lo, hi}))
}

// Add builds an addition and returns its chainable result.
func (o ops) Add(v interface{}) *Chain {
	return chain(NewAddition(o.self, operandOf(v)))
}

// Subtract builds a subtraction.
func (o ops) Subtract(v interface{}) *Chain {
	return chain(NewSubtraction(o.self, operandOf(v)))
}

// Multiply builds a multiplication.
func (o ops) Multiply(v interface{}) *Chain {
	return chain(NewMultiplication(o.self, operandOf(v)))
}

// Divide builds a division.
func (o ops) Divide(v interface{}) *Chain {
	return chain(NewDivision(o.self, operandOf(v)))
}

// Modulo builds a modulo.
func (o ops) Modulo(v interface{}) *Chain {
	return chain(NewModulo(o.self, operandOf(v)))
}

// Exponentiate builds an exponentiation.
func (o ops) Exponentiate(v interface{}) *Chain {
	return chain(NewExponentiate(o.self, operandOf(v)))
}

// Negate builds an arithmetic negation.
func (o ops) Negate() *Chain {
	return chain(NewNegation(o.self))
}

// Abs builds an absolute value.
func (o ops) Abs() *Chain {
	return chain(NewAbs(o.self))
}

// Ceil builds a ceil.
func (o ops) Ceil() *Chain {
	return chain(NewCeil(o.self))
}

// Floor builds a floor.
func (o ops) Floor() *Chain {
	return chain(NewFloor(o.self))
}

// Round builds a round with an optional precision operand.
func (o ops) Round(precision ...interface{}) *Chain {
	var p rule.Operand
	if len(precision) > 0 {
		p = operandOf(precision[0])
	}
	return chain(NewRound(o.self, p))
}

// Min builds a min over this collection node.
func (o ops) Min() *Chain {
	return chain(NewMin(o.self))
}

// Max builds a max over this collection node.
func (o ops) Max() *Chain {
	return chain(NewMax(o.self))
}

// Contains builds a substring predicate.
func (o ops) Contains(v interface{}) rule.Proposition {
	return NewStringContains(o.self, operandOf(v))
}

// DoesNotContain builds the negated substring predicate.
func (o ops) DoesNotContain(v interface{}) rule.Proposition {
	return NewStringDoesNotContain(o.self, operandOf(v))
}

// ContainsInsensitive builds a case-folded substring predicate.
func (o ops) ContainsInsensitive(v interface{}) rule.Proposition {
	return NewStringContainsInsensitive(o.self, operandOf(v))
}

// DoesNotContainInsensitive builds the negated case-folded substring
// predicate.
func (o ops) DoesNotContainInsensitive(v interface{}) rule.Proposition {
	return NewStringDoesNotContainInsensitive(o.self, operandOf(v))
}

// StartsWith builds a prefix predicate.
func (o ops) StartsWith(v interface{}) rule.Proposition {
	return NewStartsWith(o.self, operandOf(v))
}

// StartsWithInsensitive builds a case-folded prefix predicate.
func (o ops) StartsWithInsensitive(v interface{}) rule.Proposition {
	return NewStartsWithInsensitive(o.self, operandOf(v))
}

// EndsWith builds a suffix predicate.
func (o ops) EndsWith(v interface{}) rule.Proposition {
	return NewEndsWith(o.self, operandOf(v))
}

// EndsWithInsensitive builds a case-folded suffix predicate.
func (o ops) EndsWithInsensitive(v interface{}) rule.Proposition {
	return NewEndsWithInsensitive(o.self, operandOf(v))
}

// Matches builds a regular expression predicate.
func (o ops) Matches(pattern interface{}) rule.Proposition {
	return NewMatches(o.self, operandOf(pattern))
}

// DoesNotMatch builds the negated regular expression predicate.
func (o ops) DoesNotMatch(pattern interface{}) rule.Proposition {
	return NewDoesNotMatch(o.self, operandOf(pattern))
}

// StringLength builds a string length operator.
func (o ops) StringLength() *Chain {
	return chain(NewStringLength(o.self))
}

// Union builds a set union.
func (o ops) Union(v interface{}) *Chain {
	return chain(NewUnion(o.self, operandOf(v)))
}

// Intersect builds a set intersection.
func (o ops) Intersect(v interface{}) *Chain {
	return chain(NewIntersect(o.self, operandOf(v)))
}

// Complement builds a set complement.
func (o ops) Complement(v interface{}) *Chain {
	return chain(NewComplement(o.self, operandOf(v)))
}

// SymmetricDifference builds a set symmetric difference.
func (o ops) SymmetricDifference(v interface{}) *Chain {
	return chain(NewSymmetricDifference(o.self, operandOf(v)))
}

// ContainsSubset builds a subset predicate.
func (o ops) ContainsSubset(v interface{}) rule.Proposition {
	return NewContainsSubset(o.self, operandOf(v))
}

// DoesNotContainSubset builds the negated subset predicate.
func (o ops) DoesNotContainSubset(v interface{}) rule.Proposition {
	return NewDoesNotContainSubset(o.self, operandOf(v))
}

// SetContains builds a membership predicate over this collection node.
func (o ops) SetContains(v interface{}) rule.Proposition {
	return NewSetContains(o.self, operandOf(v))
}

// SetDoesNotContain builds the negated membership predicate.
func (o ops) SetDoesNotContain(v interface{}) rule.Proposition {
	return NewSetDoesNotContain(o.self, operandOf(v))
}

// IsArray builds an isArray predicate.
func (o ops) IsArray() rule.Proposition {
	return NewIsArray(o.self)
}

// IsBoolean builds an isBoolean predicate.
func (o ops) IsBoolean() rule.Proposition {
	return NewIsBoolean(o.self)
}

// IsEmpty builds an isEmpty predicate.
func (o ops) IsEmpty() rule.Proposition {
	return NewIsEmpty(o.self)
}

// IsNull builds an isNull predicate.
func (o ops) IsNull() rule.Proposition {
	return NewIsNull(o.self)
}

// IsNumeric builds an isNumeric predicate.
func (o ops) IsNumeric() rule.Proposition {
	return NewIsNumeric(o.self)
}

// IsString builds an isString predicate.
func (o ops) IsString() rule.Proposition {
	return NewIsString(o.self)
}

// ArrayCount builds an element count operator.
func (o ops) ArrayCount() *Chain {
	return chain(NewArrayCount(o.self))
}

// After builds a chronological after predicate.
func (o ops) After(v interface{}) rule.Proposition {
	return NewAfter(o.self, operandOf(v))
}

// Before builds a chronological before predicate.
func (o ops) Before(v interface{}) rule.Proposition {
	return NewBefore(o.self, operandOf(v))
}

// IsBetweenDates builds an inclusive date range predicate.
func (o ops) IsBetweenDates(lo, hi interface{}) rule.Proposition {
	return NewIsBetweenDates(o.self, NewLiteral([]interface{}{lo, hi}))
}
