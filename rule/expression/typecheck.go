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
	"github.com/spf13/cast"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

// IsArray holds when the operand is a collection.
type IsArray struct {
	UnaryExpression
}

// NewIsArray creates an isArray predicate.
func NewIsArray(child rule.Operand) *IsArray {
	return &IsArray{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsArray) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.Kind() == rule.KindCollection, nil
}

// IsBoolean holds when the operand is a boolean.
type IsBoolean struct {
	UnaryExpression
}

// NewIsBoolean creates an isBoolean predicate.
func NewIsBoolean(child rule.Operand) *IsBoolean {
	return &IsBoolean{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsBoolean) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.Kind() == rule.KindBool, nil
}

// IsEmpty holds for null, the empty string, an empty collection and
// numeric zero.
type IsEmpty struct {
	UnaryExpression
}

// NewIsEmpty creates an isEmpty predicate.
func NewIsEmpty(child rule.Operand) *IsEmpty {
	return &IsEmpty{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsEmpty) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.IsEmpty(), nil
}

// IsNull holds for the null value only.
type IsNull struct {
	UnaryExpression
}

// NewIsNull creates an isNull predicate.
func NewIsNull(child rule.Operand) *IsNull {
	return &IsNull{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsNull) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.IsNull(), nil
}

// IsNumeric holds for numeric values and for strings that parse as a
// number.
type IsNumeric struct {
	UnaryExpression
}

// NewIsNumeric creates an isNumeric predicate.
func NewIsNumeric(child rule.Operand) *IsNumeric {
	return &IsNumeric{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsNumeric) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	if v.IsNumeric() {
		return true, nil
	}
	if v.Kind() != rule.KindString {
		return false, nil
	}
	_, err = cast.ToFloat64E(v.Raw())
	return err == nil, nil
}

// IsString holds when the operand is a string.
type IsString struct {
	UnaryExpression
}

// NewIsString creates an isString predicate.
func NewIsString(child rule.Operand) *IsString {
	return &IsString{UnaryExpression{child}}
}

// Evaluate implements rule.Proposition.
func (e *IsString) Evaluate(ctx *rule.Context) (bool, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return false, err
	}
	return v.Kind() == rule.KindString, nil
}

// ArrayCount produces the number of distinct elements of its collection
// operand.
type ArrayCount struct {
	UnaryExpression
}

// NewArrayCount creates an arrayCount operator.
func NewArrayCount(child rule.Operand) *ArrayCount {
	return &ArrayCount{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *ArrayCount) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if v.Kind() != rule.KindCollection {
		return nil, ErrNotCollection.New("arrayCount", v)
	}
	return rule.NewValue(int64(v.Set().Len())), nil
}
