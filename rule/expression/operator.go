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

// Package expression implements the operator library of the rule engine:
// comparison, logical, mathematical, string, set, type and date operators,
// plus variables, literals, the symbol registry and the fluent builder.
package expression

import (
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

var (
	// ErrInvalidOperandCount is the cardinality violation: an operator
	// received the wrong number of operands.
	ErrInvalidOperandCount = errors.NewKind("%s expects %s, got %d")
	// ErrNotProposition is returned when a logical connective receives an
	// operand that cannot yield a boolean.
	ErrNotProposition = errors.NewKind("%s: %v is not a proposition")
	// ErrNotCollection is returned when an operator requires a collection
	// operand.
	ErrNotCollection = errors.NewKind("%s: %s is not a collection")
)

// Arity is the number of operands an operator requires.
type Arity byte

const (
	// Unary operators take exactly one operand.
	Unary Arity = iota
	// Binary operators take exactly two operands.
	Binary
	// Multiple operators take at least one operand.
	Multiple
)

func (a Arity) String() string {
	switch a {
	case Unary:
		return "exactly one operand"
	case Binary:
		return "exactly two operands"
	default:
		return "at least one operand"
	}
}

// checkArity validates an operand count against the declared arity.
func checkArity(name string, arity Arity, n int) error {
	switch arity {
	case Unary:
		if n != 1 {
			return ErrInvalidOperandCount.New(name, arity, n)
		}
	case Binary:
		if n != 2 {
			return ErrInvalidOperandCount.New(name, arity, n)
		}
	default:
		if n < 1 {
			return ErrInvalidOperandCount.New(name, arity, n)
		}
	}
	return nil
}

// UnaryExpression is the base for operators over a single operand.
type UnaryExpression struct {
	Child rule.Operand
}

// BinaryExpression is the base for operators over two operands.
type BinaryExpression struct {
	Left  rule.Operand
	Right rule.Operand
}

func (e *BinaryExpression) eval(ctx *rule.Context) (*rule.Value, *rule.Value, error) {
	l, err := e.Left.Eval(ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := e.Right.Eval(ctx)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// operandOf lifts any host value into an operand: operands pass through,
// propositions are wrapped so their verdict becomes a boolean value, and
// everything else becomes a literal.
func operandOf(v interface{}) rule.Operand {
	switch t := v.(type) {
	case rule.Operand:
		return t
	case rule.Proposition:
		return &propositionOperand{t}
	default:
		return NewLiteral(v)
	}
}

// propositionOf requires the operand of a logical connective to decide.
// Operands that produce a boolean value qualify too.
func propositionOf(name string, v interface{}) (rule.Proposition, error) {
	switch t := v.(type) {
	case rule.Proposition:
		return t, nil
	case rule.Operand:
		return &operandProposition{t}, nil
	case bool:
		return &operandProposition{NewLiteral(t)}, nil
	}
	return nil, ErrNotProposition.New(name, v)
}

// AsProposition adapts a built operator node into a proposition. Value
// producers are adapted through their boolean content, so evaluating a
// non-boolean result fails with the value's type error.
func AsProposition(v interface{}) (rule.Proposition, error) {
	return propositionOf("rule", v)
}

// propositionOperand adapts a proposition into an operand yielding a
// boolean value.
type propositionOperand struct {
	p rule.Proposition
}

func (o *propositionOperand) Eval(ctx *rule.Context) (*rule.Value, error) {
	ok, err := o.p.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return rule.NewValue(ok), nil
}

// operandProposition adapts a boolean-valued operand into a proposition.
type operandProposition struct {
	o rule.Operand
}

func (p *operandProposition) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := p.o.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.Bool()
}
