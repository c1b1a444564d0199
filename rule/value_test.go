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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewValueKinds(t *testing.T) {
	testCases := []struct {
		name string
		in   interface{}
		kind Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBool},
		{"int", 42, KindInt},
		{"int32", int32(42), KindInt},
		{"uint", uint(42), KindInt},
		{"float", 4.2, KindFloat},
		{"float32", float32(4.2), KindFloat},
		{"string", "foo", KindString},
		{"slice", []interface{}{1, 2}, KindCollection},
		{"string slice", []string{"a"}, KindCollection},
		{"map", map[string]interface{}{"a": 1}, KindObject},
		{"time", time.Now(), KindObject},
		{"func", func() {}, KindObject},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, NewValue(tt.in).Kind())
		})
	}
}

const (
	testEqual int = iota
	testLess
	testGreater
	testNone
)

var comparisonCases = map[int][][]interface{}{
	testEqual: {
		{"foo", "foo"},
		{"", ""},
		{int64(1), 1},
		{4.2, 4.2},
		{true, true},
		{nil, nil},
	},
	testLess: {
		{"a", "b"},
		{"", "1"},
		{int64(-1), int64(0)},
		{1, 2},
		{1, 1.5},
		{0.5, 1},
	},
	testGreater: {
		{"b", "a"},
		{"1", ""},
		{2, 1},
		{1.5, 1},
		{2, 1.5},
	},
	testNone: {
		{"a", 1},
		{1, "a"},
		{true, false},
		{nil, 1},
	},
}

func TestValueComparison(t *testing.T) {
	require := require.New(t)
	for cmpResult, cases := range comparisonCases {
		for _, pair := range cases {
			l, r := NewValue(pair[0]), NewValue(pair[1])
			switch cmpResult {
			case testEqual:
				require.True(l.EqualTo(r), "%v = %v", pair[0], pair[1])
				require.False(l.LessThan(r))
				require.False(l.GreaterThan(r))
			case testLess:
				require.True(l.LessThan(r), "%v < %v", pair[0], pair[1])
				require.False(l.GreaterThan(r))
				require.False(l.EqualTo(r))
			case testGreater:
				require.True(l.GreaterThan(r), "%v > %v", pair[0], pair[1])
				require.False(l.LessThan(r))
			case testNone:
				require.False(l.LessThan(r))
				require.False(l.GreaterThan(r))
			}
		}
	}
}

func TestValueStrictTyping(t *testing.T) {
	require := require.New(t)

	i, f := NewValue(1), NewValue(1.0)
	require.False(i.EqualTo(f))
	require.False(i.SameAs(f))

	// Ordering still compares across numeric kinds.
	require.False(i.LessThan(f))
	require.False(i.GreaterThan(f))
	require.True(NewValue(1).LessThan(NewValue(1.5)))
}

func TestValueComparisonDuality(t *testing.T) {
	require := require.New(t)
	pairs := [][]interface{}{
		{1, 2}, {2, 1}, {1, 1}, {"a", "b"}, {"b", "a"}, {1.5, 1}, {"a", 1},
	}
	for _, pair := range pairs {
		a, b := NewValue(pair[0]), NewValue(pair[1])
		require.Equal(a.LessThan(b), b.GreaterThan(a), "%v vs %v", pair[0], pair[1])
	}
}

func TestValueChronologicalComparison(t *testing.T) {
	require := require.New(t)

	past := NewValue(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	future := NewValue(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))

	require.True(past.LessThan(future))
	require.True(future.GreaterThan(past))
	require.False(past.EqualTo(future))
	require.True(past.EqualTo(NewValue(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))))
}

func TestValueArithmetic(t *testing.T) {
	testCases := []struct {
		name     string
		op       func(l, r *Value) (*Value, error)
		left     interface{}
		right    interface{}
		expected interface{}
	}{
		{"int add", (*Value).Add, 1, 2, int64(3)},
		{"float add", (*Value).Add, 1.5, 2, 3.5},
		{"int sub", (*Value).Sub, 5, 2, int64(3)},
		{"int mul", (*Value).Mul, 4, 3, int64(12)},
		{"exact int div", (*Value).Div, 10, 2, int64(5)},
		{"inexact int div", (*Value).Div, 5, 2, 2.5},
		{"float div", (*Value).Div, 5.0, 2, 2.5},
		{"int mod", (*Value).Mod, 10, 3, int64(1)},
		{"int pow", (*Value).Pow, 2, 10, int64(1024)},
		{"negative exponent", (*Value).Pow, 2, -1, 0.5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			result, err := tt.op(NewValue(tt.left), NewValue(tt.right))
			require.NoError(err)
			require.Equal(tt.expected, result.Raw())
		})
	}
}

func TestValueArithmeticErrors(t *testing.T) {
	require := require.New(t)

	_, err := NewValue(10).Div(NewValue(0))
	require.Error(err)
	require.True(ErrDivisionByZero.Is(err))

	_, err = NewValue(10).Mod(NewValue(0))
	require.Error(err)
	require.True(ErrModuloByZero.Is(err))

	_, err = NewValue("a").Add(NewValue(1))
	require.Error(err)
	require.True(ErrNotNumber.Is(err))

	_, err = NewValue(1).Add(NewValue("a"))
	require.Error(err)
	require.True(ErrNotNumber.Is(err))

	_, err = NewValue(nil).Negate()
	require.True(ErrNotNumber.Is(err))
}

func TestValueDecimalArithmetic(t *testing.T) {
	require := require.New(t)

	a, err := NewDecimal("0.1")
	require.NoError(err)
	b, err := NewDecimal("0.2")
	require.NoError(err)

	sum, err := a.Add(b)
	require.NoError(err)
	expected, err := NewDecimal("0.3")
	require.NoError(err)
	require.True(sum.EqualTo(expected))

	// Mixing decimal and int promotes to decimal.
	doubled, err := expected.Mul(NewValue(2))
	require.NoError(err)
	require.Equal(KindDecimal, doubled.Kind())

	_, err = NewDecimal("not a number")
	require.Error(err)
}

func TestValueUnaryMath(t *testing.T) {
	require := require.New(t)

	neg, err := NewValue(4).Negate()
	require.NoError(err)
	require.Equal(int64(-4), neg.Raw())

	abs, err := NewValue(-4.5).Abs()
	require.NoError(err)
	require.Equal(4.5, abs.Raw())

	ceil, err := NewValue(1.2).Ceil()
	require.NoError(err)
	require.Equal(2.0, ceil.Raw())

	floor, err := NewValue(1.8).Floor()
	require.NoError(err)
	require.Equal(1.0, floor.Raw())

	round, err := NewValue(3.14159).Round(2)
	require.NoError(err)
	require.Equal(3.14, round.Raw())
}

func TestValueStringOps(t *testing.T) {
	testCases := []struct {
		name     string
		op       func(l, r *Value) (bool, error)
		left     interface{}
		right    interface{}
		expected bool
	}{
		{"contains", (*Value).Contains, "foobar", "oba", true},
		{"does not contain", (*Value).Contains, "foobar", "baz", false},
		{"contains number coerced", (*Value).Contains, "x42y", 42, true},
		{"icontains", (*Value).ContainsInsensitive, "FooBar", "oBA", true},
		{"icontains miss", (*Value).ContainsInsensitive, "FooBar", "baz", false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ok, err := tt.op(NewValue(tt.left), NewValue(tt.right))
			require.NoError(err)
			require.Equal(tt.expected, ok)
		})
	}
}

func TestValueStartsEndsWith(t *testing.T) {
	testCases := []struct {
		name        string
		left, right string
		insensitive bool
		starts      bool
		ends        bool
	}{
		{"prefix", "foobar", "foo", false, true, false},
		{"suffix", "foobar", "bar", false, false, true},
		{"case mismatch", "FooBar", "foo", false, false, false},
		{"case folded", "FooBar", "foo", true, true, false},
		{"empty needle", "foobar", "", false, false, false},
		{"empty haystack", "", "foo", false, false, false},
		{"both empty", "", "", false, false, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l, r := NewValue(tt.left), NewValue(tt.right)

			starts, err := l.StartsWith(r, tt.insensitive)
			require.NoError(err)
			require.Equal(tt.starts, starts)

			ends, err := l.EndsWith(r, tt.insensitive)
			require.NoError(err)
			require.Equal(tt.ends, ends)
		})
	}
}

func TestValueStringOpErrors(t *testing.T) {
	require := require.New(t)

	_, err := NewValue([]interface{}{1}).Contains(NewValue("a"))
	require.True(ErrNotString.Is(err))

	_, err = NewValue("a").Contains(NewValue(nil))
	require.True(ErrNotString.Is(err))
}

func TestValueIsEmpty(t *testing.T) {
	testCases := []struct {
		name     string
		in       interface{}
		expected bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"zero int", 0, true},
		{"zero float", 0.0, true},
		{"empty slice", []interface{}{}, true},
		{"false", false, false},
		{"string", "x", false},
		{"int", 1, false},
		{"slice", []interface{}{1}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NewValue(tt.in).IsEmpty())
		})
	}
}

func TestValueCollections(t *testing.T) {
	require := require.New(t)

	v := NewValue([]interface{}{1, 2, 2, 3})
	require.Equal(KindCollection, v.Kind())
	require.Equal(3, v.Set().Len())

	// Items preserves duplicates and order.
	items := v.Items()
	require.Len(items, 4)
	require.Equal(int64(2), items[2].Raw())

	structural := NewValue([]interface{}{3, 2, 1, 2})
	require.True(v.EqualTo(structural))
}
