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

// ErrRoundPrecision is returned when round receives a non-integer
// precision operand.
var ErrRoundPrecision = errors.NewKind("round: precision must be an integer, got %s")

// Addition produces the sum of its two operands.
type Addition struct {
	BinaryExpression
}

// NewAddition creates an add operator.
func NewAddition(left, right rule.Operand) *Addition {
	return &Addition{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Addition) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Add(r)
}

// Subtraction produces the difference of its two operands.
type Subtraction struct {
	BinaryExpression
}

// NewSubtraction creates a subtract operator.
func NewSubtraction(left, right rule.Operand) *Subtraction {
	return &Subtraction{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Subtraction) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Sub(r)
}

// Multiplication produces the product of its two operands.
type Multiplication struct {
	BinaryExpression
}

// NewMultiplication creates a multiply operator.
func NewMultiplication(left, right rule.Operand) *Multiplication {
	return &Multiplication{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Multiplication) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Mul(r)
}

// Division produces the quotient of its two operands.
type Division struct {
	BinaryExpression
}

// NewDivision creates a divide operator.
func NewDivision(left, right rule.Operand) *Division {
	return &Division{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Division) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Div(r)
}

// Modulo produces the remainder of its two operands.
type Modulo struct {
	BinaryExpression
}

// NewModulo creates a modulo operator.
func NewModulo(left, right rule.Operand) *Modulo {
	return &Modulo{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Modulo) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Mod(r)
}

// Exponentiate raises the left operand to the right operand.
type Exponentiate struct {
	BinaryExpression
}

// NewExponentiate creates an exponentiate operator.
func NewExponentiate(left, right rule.Operand) *Exponentiate {
	return &Exponentiate{BinaryExpression{left, right}}
}

// Eval implements rule.Operand.
func (e *Exponentiate) Eval(ctx *rule.Context) (*rule.Value, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return nil, err
	}
	return l.Pow(r)
}

// Negation produces the arithmetic negation of its operand.
type Negation struct {
	UnaryExpression
}

// NewNegation creates a negate operator.
func NewNegation(child rule.Operand) *Negation {
	return &Negation{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Negation) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Negate()
}

// Abs produces the absolute value of its operand.
type Abs struct {
	UnaryExpression
}

// NewAbs creates an abs operator.
func NewAbs(child rule.Operand) *Abs {
	return &Abs{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Abs) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Abs()
}

// Ceil rounds its operand up to an integer value.
type Ceil struct {
	UnaryExpression
}

// NewCeil creates a ceil operator.
func NewCeil(child rule.Operand) *Ceil {
	return &Ceil{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Ceil) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Ceil()
}

// Floor rounds its operand down to an integer value.
type Floor struct {
	UnaryExpression
}

// NewFloor creates a floor operator.
func NewFloor(child rule.Operand) *Floor {
	return &Floor{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Floor) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Floor()
}

// Round rounds its operand to an optional precision (decimal digits,
// default zero).
type Round struct {
	Child     rule.Operand
	Precision rule.Operand
}

// NewRound creates a round operator. Precision may be nil.
func NewRound(child rule.Operand, precision rule.Operand) *Round {
	return &Round{Child: child, Precision: precision}
}

// Eval implements rule.Operand.
func (e *Round) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}

	var precision int64
	if e.Precision != nil {
		p, err := e.Precision.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if p.Kind() != rule.KindInt {
			return nil, ErrRoundPrecision.New(p)
		}
		precision = p.Raw().(int64)
	}
	return v.Round(precision)
}

// Min produces the smallest element of its collection operand.
type Min struct {
	UnaryExpression
}

// NewMin creates a min operator.
func NewMin(child rule.Operand) *Min {
	return &Min{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Min) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Set().Min()
}

// Max produces the largest element of its collection operand.
type Max struct {
	UnaryExpression
}

// NewMax creates a max operator.
func NewMax(child rule.Operand) *Max {
	return &Max{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *Max) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return v.Set().Max()
}
