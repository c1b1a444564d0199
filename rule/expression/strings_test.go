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
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

func TestStringContains(t *testing.T) {
	testCases := []struct {
		name     string
		p        rule.Proposition
		expected bool
	}{
		{"contains", NewStringContains(NewLiteral("foobar"), NewLiteral("oba")), true},
		{"contains miss", NewStringContains(NewLiteral("foobar"), NewLiteral("baz")), false},
		{"doesNotContain", NewStringDoesNotContain(NewLiteral("foobar"), NewLiteral("baz")), true},
		{"icontains", NewStringContainsInsensitive(NewLiteral("FooBar"), NewLiteral("OBA")), true},
		{"doesNotContainInsensitive", NewStringDoesNotContainInsensitive(NewLiteral("FooBar"), NewLiteral("OBA")), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, evaluate(t, tt.p, rule.NewContext(nil)))
		})
	}
}

func TestStartsEndsWithOperators(t *testing.T) {
	testCases := []struct {
		name     string
		p        rule.Proposition
		expected bool
	}{
		{"startsWith", NewStartsWith(NewLiteral("foobar"), NewLiteral("foo")), true},
		{"startsWith case", NewStartsWith(NewLiteral("Foobar"), NewLiteral("foo")), false},
		{"istartsWith", NewStartsWithInsensitive(NewLiteral("Foobar"), NewLiteral("FOO")), true},
		{"endsWith", NewEndsWith(NewLiteral("foobar"), NewLiteral("bar")), true},
		{"iendsWith", NewEndsWithInsensitive(NewLiteral("fooBAR"), NewLiteral("bar")), true},
		{"empty needle never matches", NewStartsWith(NewLiteral("foobar"), NewLiteral("")), false},
		{"empty haystack never matches", NewEndsWith(NewLiteral(""), NewLiteral("bar")), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, evaluate(t, tt.p, rule.NewContext(nil)))
		})
	}
}

func TestMatches(t *testing.T) {
	require := require.New(t)
	ctx := rule.NewContext(nil)

	require.True(evaluate(t, NewMatches(NewLiteral("foobar"), NewLiteral(".*bar")), ctx))
	require.False(evaluate(t, NewMatches(NewLiteral("foofoo"), NewLiteral("bar$")), ctx))
	require.True(evaluate(t, NewDoesNotMatch(NewLiteral("foofoo"), NewLiteral("bar$")), ctx))

	// Both sides must be strings, no coercion.
	_, err := NewMatches(NewLiteral(42), NewLiteral(".*")).Evaluate(ctx)
	require.Error(err)
	require.True(ErrNotStringValue.Is(err))

	_, err = NewMatches(NewLiteral("foo"), NewLiteral(42)).Evaluate(ctx)
	require.Error(err)
	require.True(ErrNotStringValue.Is(err))

	// RE2 rejects PCRE-only constructs like backreferences.
	_, err = NewMatches(NewLiteral("aa"), NewLiteral(`(a)\1`)).Evaluate(ctx)
	require.Error(err)
	require.True(ErrInvalidPattern.Is(err))
}

func TestStringLength(t *testing.T) {
	require := require.New(t)
	ctx := rule.NewContext(nil)

	require.Equal(int64(6), eval(t, NewStringLength(NewLiteral("foobar")), ctx).Raw())
	require.Equal(int64(0), eval(t, NewStringLength(NewLiteral("")), ctx).Raw())

	// Length counts runes, not bytes.
	require.Equal(int64(5), eval(t, NewStringLength(NewLiteral("héllo")), ctx).Raw())

	_, err := NewStringLength(NewLiteral(42)).Eval(ctx)
	require.Error(err)
	require.True(ErrNotStringValue.Is(err))
}
