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
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/apd/v2"
	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrNotNumber is returned when an arithmetic operation receives a
	// non-numeric operand.
	ErrNotNumber = errors.NewKind("value: %s is not a number")
	// ErrNotString is returned when a string operation receives a value
	// that cannot be read as a string.
	ErrNotString = errors.NewKind("value: %s cannot be read as a string")
	// ErrNotBoolean is returned when a boolean is required and the value
	// is of another kind.
	ErrNotBoolean = errors.NewKind("value: %s is not a boolean")
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.NewKind("value: division by zero")
	// ErrModuloByZero is returned by Mod when the divisor is zero.
	ErrModuloByZero = errors.NewKind("value: modulo by zero")
)

// Kind tags the underlying type of a Value.
type Kind byte

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit floating point number.
	KindFloat
	// KindDecimal is an arbitrary-precision decimal.
	KindDecimal
	// KindString is a string.
	KindString
	// KindObject is an opaque host object, compared by identity.
	KindObject
	// KindCollection is an ordered collection, viewed as a Set.
	KindCollection
)

var kindNames = map[Kind]string{
	KindNull:       "null",
	KindBool:       "bool",
	KindInt:        "int",
	KindFloat:      "float",
	KindDecimal:    "decimal",
	KindString:     "string",
	KindObject:     "object",
	KindCollection: "collection",
}

func (k Kind) String() string { return kindNames[k] }

// decCtx is the apd context used for all decimal arithmetic.
var decCtx = apd.BaseContext.WithPrecision(34)

// Value is an immutable typed value. It is created once from a host value
// and never mutated; operations never modify their receiver or argument.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	d    *apd.Decimal
	s    string
	obj  interface{}
	set  *Set
	raw  interface{}
}

// NewValue wraps a host value. Integers of any width become KindInt, floats
// KindFloat, apd decimals KindDecimal, slices and arrays KindCollection,
// and anything else (maps, structs, funcs, times) KindObject. A *Value is
// returned unchanged.
func NewValue(v interface{}) *Value {
	switch t := v.(type) {
	case nil:
		return &Value{kind: KindNull}
	case *Value:
		return t
	case bool:
		return &Value{kind: KindBool, b: t, raw: t}
	case int:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case int8:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case int16:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case int32:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case int64:
		return &Value{kind: KindInt, i: t, raw: t}
	case uint:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case uint8:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case uint16:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case uint32:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case uint64:
		return &Value{kind: KindInt, i: int64(t), raw: int64(t)}
	case float32:
		return &Value{kind: KindFloat, f: float64(t), raw: float64(t)}
	case float64:
		return &Value{kind: KindFloat, f: t, raw: t}
	case string:
		return &Value{kind: KindString, s: t, raw: t}
	case *apd.Decimal:
		return &Value{kind: KindDecimal, d: t, raw: t}
	case apd.Decimal:
		return &Value{kind: KindDecimal, d: &t, raw: &t}
	case *Set:
		return &Value{kind: KindCollection, set: t, raw: t}
	case time.Time:
		return &Value{kind: KindObject, obj: t, raw: t}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return &Value{kind: KindCollection, set: NewSet(v), raw: v}
	}

	return &Value{kind: KindObject, obj: v, raw: v}
}

// NewDecimal builds a decimal Value from its textual form.
func NewDecimal(s string) (*Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, ErrNotNumber.New(s)
	}
	return NewValue(d), nil
}

// Kind returns the value's kind tag.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether the value is of a numeric kind. It does not
// inspect strings; see the IsNumeric operator for the textual predicate.
func (v *Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat || v.kind == KindDecimal
}

// IsEmpty reports whether the value is null, an empty string, an empty
// collection or numeric zero.
func (v *Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == ""
	case KindCollection:
		return v.set.Len() == 0
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	case KindDecimal:
		return v.d.IsZero()
	}
	return false
}

// Raw returns the wrapped host value.
func (v *Value) Raw() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindDecimal:
		return v.d
	case KindString:
		return v.s
	case KindObject:
		return v.obj
	default:
		return v.raw
	}
}

// Bool returns the boolean content of the value, or ErrNotBoolean for any
// other kind.
func (v *Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, ErrNotBoolean.New(v)
	}
	return v.b, nil
}

// Set returns the collection view of the value. Scalars become singleton
// sets and null the empty set.
func (v *Value) Set() *Set {
	if v.kind == KindCollection {
		return v.set
	}
	return NewSet(v)
}

// Items returns the collection's elements in order, without the Set
// view's deduplication. Non-collections yield themselves.
func (v *Value) Items() []*Value {
	if v.kind != KindCollection {
		return []*Value{v}
	}
	rv := reflect.ValueOf(v.raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]*Value, rv.Len())
		for i := range out {
			out[i] = NewValue(rv.Index(i).Interface())
		}
		return out
	}
	return v.set.Values()
}

func (v *Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Raw())
}

// EqualTo reports strict equality: same kind and same content. There is no
// numeric promotion, so int(1) is not equal to float(1.0).
func (v *Value) EqualTo(o *Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindDecimal:
		return v.d.Cmp(o.d) == 0
	case KindString:
		return v.s == o.s
	case KindCollection:
		return v.set.Equal(o.set)
	case KindObject:
		return objectEqual(v.obj, o.obj)
	}
	return false
}

// SameAs is an alias of EqualTo kept for the is/isNot operator pair.
func (v *Value) SameAs(o *Value) bool { return v.EqualTo(o) }

// compare returns the natural ordering of two values and whether the pair
// is comparable at all. Numbers compare numerically across kinds, strings
// lexicographically and times chronologically.
func (v *Value) compare(o *Value) (int, bool) {
	if v.IsNumeric() && o.IsNumeric() {
		if v.kind == KindDecimal || o.kind == KindDecimal {
			return v.decimal().Cmp(o.decimal()), true
		}
		if v.kind == KindFloat || o.kind == KindFloat {
			a, b := v.float(), o.float()
			switch {
			case a < b:
				return -1, true
			case a > b:
				return 1, true
			}
			return 0, true
		}
		switch {
		case v.i < o.i:
			return -1, true
		case v.i > o.i:
			return 1, true
		}
		return 0, true
	}

	if v.kind == KindString && o.kind == KindString {
		return strings.Compare(v.s, o.s), true
	}

	if a, ok := v.obj.(time.Time); ok {
		if b, ok := o.obj.(time.Time); ok {
			switch {
			case a.Before(b):
				return -1, true
			case a.After(b):
				return 1, true
			}
			return 0, true
		}
	}

	return 0, false
}

// GreaterThan reports whether v orders after o. Pairs with no defined
// ordering are never greater.
func (v *Value) GreaterThan(o *Value) bool {
	c, ok := v.compare(o)
	return ok && c > 0
}

// LessThan reports whether v orders before o. Pairs with no defined
// ordering are never less.
func (v *Value) LessThan(o *Value) bool {
	c, ok := v.compare(o)
	return ok && c < 0
}

func (v *Value) float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	case KindDecimal:
		f, _ := v.d.Float64()
		return f
	}
	return 0
}

func (v *Value) decimal() *apd.Decimal {
	switch v.kind {
	case KindInt:
		return apd.New(v.i, 0)
	case KindFloat:
		d, _, err := apd.NewFromString(strconv.FormatFloat(v.f, 'g', -1, 64))
		if err != nil {
			return apd.New(0, 0)
		}
		return d
	case KindDecimal:
		return v.d
	}
	return apd.New(0, 0)
}

type arithOp byte

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opMod
	opPow
)

func (v *Value) arith(o *Value, op arithOp) (*Value, error) {
	if !v.IsNumeric() {
		return nil, ErrNotNumber.New(v)
	}
	if !o.IsNumeric() {
		return nil, ErrNotNumber.New(o)
	}

	if op == opDiv && o.IsEmpty() {
		return nil, ErrDivisionByZero.New()
	}
	if op == opMod && o.IsEmpty() {
		return nil, ErrModuloByZero.New()
	}

	if v.kind == KindDecimal || o.kind == KindDecimal {
		res := new(apd.Decimal)
		a, b := v.decimal(), o.decimal()
		var err error
		switch op {
		case opAdd:
			_, err = decCtx.Add(res, a, b)
		case opSub:
			_, err = decCtx.Sub(res, a, b)
		case opMul:
			_, err = decCtx.Mul(res, a, b)
		case opDiv:
			_, err = decCtx.Quo(res, a, b)
		case opMod:
			_, err = decCtx.Rem(res, a, b)
		case opPow:
			_, err = decCtx.Pow(res, a, b)
		}
		if err != nil {
			return nil, ErrNotNumber.Wrap(err, v)
		}
		return NewValue(res), nil
	}

	if v.kind == KindFloat || o.kind == KindFloat {
		a, b := v.float(), o.float()
		switch op {
		case opAdd:
			return NewValue(a + b), nil
		case opSub:
			return NewValue(a - b), nil
		case opMul:
			return NewValue(a * b), nil
		case opDiv:
			return NewValue(a / b), nil
		case opMod:
			return NewValue(math.Mod(a, b)), nil
		case opPow:
			return NewValue(math.Pow(a, b)), nil
		}
	}

	a, b := v.i, o.i
	switch op {
	case opAdd:
		return NewValue(a + b), nil
	case opSub:
		return NewValue(a - b), nil
	case opMul:
		return NewValue(a * b), nil
	case opDiv:
		if a%b == 0 {
			return NewValue(a / b), nil
		}
		return NewValue(float64(a) / float64(b)), nil
	case opMod:
		return NewValue(a % b), nil
	case opPow:
		if b < 0 {
			return NewValue(math.Pow(float64(a), float64(b))), nil
		}
		r := int64(1)
		for n := int64(0); n < b; n++ {
			r *= a
		}
		return NewValue(r), nil
	}
	return nil, ErrNotNumber.New(v)
}

// Add returns v + o. Integer operands stay integer; a float operand
// promotes the result to float and a decimal operand to decimal.
func (v *Value) Add(o *Value) (*Value, error) { return v.arith(o, opAdd) }

// Sub returns v - o.
func (v *Value) Sub(o *Value) (*Value, error) { return v.arith(o, opSub) }

// Mul returns v * o.
func (v *Value) Mul(o *Value) (*Value, error) { return v.arith(o, opMul) }

// Div returns v / o. Integer division that is not exact falls back to
// float. Division by zero is ErrDivisionByZero.
func (v *Value) Div(o *Value) (*Value, error) { return v.arith(o, opDiv) }

// Mod returns the remainder of v / o. Modulo by zero is ErrModuloByZero.
func (v *Value) Mod(o *Value) (*Value, error) { return v.arith(o, opMod) }

// Pow returns v raised to o.
func (v *Value) Pow(o *Value) (*Value, error) { return v.arith(o, opPow) }

// Negate returns -v.
func (v *Value) Negate() (*Value, error) {
	switch v.kind {
	case KindInt:
		return NewValue(-v.i), nil
	case KindFloat:
		return NewValue(-v.f), nil
	case KindDecimal:
		res := new(apd.Decimal)
		res.Neg(v.d)
		return NewValue(res), nil
	}
	return nil, ErrNotNumber.New(v)
}

// Abs returns the absolute value of v.
func (v *Value) Abs() (*Value, error) {
	switch v.kind {
	case KindInt:
		if v.i < 0 {
			return NewValue(-v.i), nil
		}
		return v, nil
	case KindFloat:
		return NewValue(math.Abs(v.f)), nil
	case KindDecimal:
		res := new(apd.Decimal)
		res.Abs(v.d)
		return NewValue(res), nil
	}
	return nil, ErrNotNumber.New(v)
}

// Ceil returns the smallest integer value no less than v. Integers are
// returned unchanged.
func (v *Value) Ceil() (*Value, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindFloat:
		return NewValue(math.Ceil(v.f)), nil
	case KindDecimal:
		res := new(apd.Decimal)
		if _, err := decCtx.Ceil(res, v.d); err != nil {
			return nil, ErrNotNumber.Wrap(err, v)
		}
		return NewValue(res), nil
	}
	return nil, ErrNotNumber.New(v)
}

// Floor returns the largest integer value no greater than v. Integers are
// returned unchanged.
func (v *Value) Floor() (*Value, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindFloat:
		return NewValue(math.Floor(v.f)), nil
	case KindDecimal:
		res := new(apd.Decimal)
		if _, err := decCtx.Floor(res, v.d); err != nil {
			return nil, ErrNotNumber.Wrap(err, v)
		}
		return NewValue(res), nil
	}
	return nil, ErrNotNumber.New(v)
}

// Round returns v rounded to the given number of decimal digits.
func (v *Value) Round(precision int64) (*Value, error) {
	switch v.kind {
	case KindInt:
		if precision >= 0 {
			return v, nil
		}
		shift := math.Pow(10, float64(-precision))
		return NewValue(int64(math.Round(float64(v.i)/shift) * shift)), nil
	case KindFloat:
		shift := math.Pow(10, float64(precision))
		return NewValue(math.Round(v.f*shift) / shift), nil
	case KindDecimal:
		res := new(apd.Decimal)
		if _, err := decCtx.Quantize(res, v.d, int32(-precision)); err != nil {
			return nil, ErrNotNumber.Wrap(err, v)
		}
		return NewValue(res), nil
	}
	return nil, ErrNotNumber.New(v)
}

// text coerces scalar values to their string form.
func (v *Value) text() (string, error) {
	switch v.kind {
	case KindCollection, KindObject, KindNull:
		return "", ErrNotString.New(v)
	case KindDecimal:
		return v.d.Text('f'), nil
	}
	s, err := cast.ToStringE(v.Raw())
	if err != nil {
		return "", ErrNotString.New(v)
	}
	return s, nil
}

// Contains reports whether the string form of o occurs within the string
// form of v.
func (v *Value) Contains(o *Value) (bool, error) {
	a, err := v.text()
	if err != nil {
		return false, err
	}
	b, err := o.text()
	if err != nil {
		return false, err
	}
	return strings.Contains(a, b), nil
}

// ContainsInsensitive is Contains under Unicode case folding.
func (v *Value) ContainsInsensitive(o *Value) (bool, error) {
	a, err := v.text()
	if err != nil {
		return false, err
	}
	b, err := o.text()
	if err != nil {
		return false, err
	}
	return strings.Contains(foldCase(a), foldCase(b)), nil
}

// StartsWith reports whether v begins with o. An empty string on either
// side is never a match.
func (v *Value) StartsWith(o *Value, insensitive bool) (bool, error) {
	a, err := v.text()
	if err != nil {
		return false, err
	}
	b, err := o.text()
	if err != nil {
		return false, err
	}
	if a == "" || b == "" {
		return false, nil
	}
	if insensitive {
		a, b = foldCase(a), foldCase(b)
	}
	return strings.HasPrefix(a, b), nil
}

// EndsWith reports whether v ends with o. An empty string on either side
// is never a match.
func (v *Value) EndsWith(o *Value, insensitive bool) (bool, error) {
	a, err := v.text()
	if err != nil {
		return false, err
	}
	b, err := o.text()
	if err != nil {
		return false, err
	}
	if a == "" || b == "" {
		return false, nil
	}
	if insensitive {
		a, b = foldCase(a), foldCase(b)
	}
	return strings.HasSuffix(a, b), nil
}

func foldCase(s string) string {
	return strings.Map(toFold, s)
}

// toFold maps a rune to the minimum of its case-fold orbit, a stable
// representative for fold-insensitive matching.
func toFold(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

func objectEqual(a, b interface{}) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Equal(bt)
		}
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan:
		return av.Pointer() == bv.Pointer()
	}
	return false
}
