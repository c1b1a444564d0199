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
	"regexp"
	"unicode/utf8"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

var (
	// ErrNotStringValue is returned by the operators that require a true
	// string operand (matches, stringLength) instead of coercing.
	ErrNotStringValue = errors.NewKind("%s: %s is not a string")
	// ErrInvalidPattern is returned when a matches pattern does not
	// compile. The regexp dialect is Go's RE2.
	ErrInvalidPattern = errors.NewKind("matches: invalid pattern %q: %s")
)

// StringContains is the substring predicate. Scalar operands are coerced
// to their string form.
type StringContains struct {
	BinaryExpression
	insensitive bool
	negate      bool
}

// NewStringContains creates a contains predicate.
func NewStringContains(left, right rule.Operand) *StringContains {
	return &StringContains{BinaryExpression: BinaryExpression{left, right}}
}

// NewStringDoesNotContain creates a doesNotContain predicate.
func NewStringDoesNotContain(left, right rule.Operand) *StringContains {
	return &StringContains{BinaryExpression: BinaryExpression{left, right}, negate: true}
}

// NewStringContainsInsensitive creates an icontains predicate using
// Unicode case folding.
func NewStringContainsInsensitive(left, right rule.Operand) *StringContains {
	return &StringContains{BinaryExpression: BinaryExpression{left, right}, insensitive: true}
}

// NewStringDoesNotContainInsensitive creates the negated icontains
// predicate.
func NewStringDoesNotContainInsensitive(left, right rule.Operand) *StringContains {
	return &StringContains{
		BinaryExpression: BinaryExpression{left, right},
		insensitive:      true,
		negate:           true,
	}
}

// Evaluate implements rule.Proposition.
func (e *StringContains) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	var ok bool
	if e.insensitive {
		ok, err = l.ContainsInsensitive(r)
	} else {
		ok, err = l.Contains(r)
	}
	if err != nil {
		return false, err
	}
	return ok != e.negate, nil
}

// StartsWith tests whether the left side begins with the right side.
type StartsWith struct {
	BinaryExpression
	insensitive bool
}

// NewStartsWith creates a startsWith predicate.
func NewStartsWith(left, right rule.Operand) *StartsWith {
	return &StartsWith{BinaryExpression: BinaryExpression{left, right}}
}

// NewStartsWithInsensitive creates an istartsWith predicate.
func NewStartsWithInsensitive(left, right rule.Operand) *StartsWith {
	return &StartsWith{BinaryExpression: BinaryExpression{left, right}, insensitive: true}
}

// Evaluate implements rule.Proposition.
func (e *StartsWith) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.StartsWith(r, e.insensitive)
}

// EndsWith tests whether the left side ends with the right side.
type EndsWith struct {
	BinaryExpression
	insensitive bool
}

// NewEndsWith creates an endsWith predicate.
func NewEndsWith(left, right rule.Operand) *EndsWith {
	return &EndsWith{BinaryExpression: BinaryExpression{left, right}}
}

// NewEndsWithInsensitive creates an iendsWith predicate.
func NewEndsWithInsensitive(left, right rule.Operand) *EndsWith {
	return &EndsWith{BinaryExpression: BinaryExpression{left, right}, insensitive: true}
}

// Evaluate implements rule.Proposition.
func (e *EndsWith) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	return l.EndsWith(r, e.insensitive)
}

// Matches tests the left side against a regular expression. Both sides
// must be strings; the pattern is compiled on every evaluation since it
// may come from a variable.
type Matches struct {
	BinaryExpression
	negate bool
}

// NewMatches creates a matches predicate.
func NewMatches(left, right rule.Operand) *Matches {
	return &Matches{BinaryExpression: BinaryExpression{left, right}}
}

// NewDoesNotMatch creates a doesNotMatch predicate.
func NewDoesNotMatch(left, right rule.Operand) *Matches {
	return &Matches{BinaryExpression: BinaryExpression{left, right}, negate: true}
}

// Evaluate implements rule.Proposition.
func (e *Matches) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	if l.Kind() != rule.KindString {
		return false, ErrNotStringValue.New("matches", l)
	}
	if r.Kind() != rule.KindString {
		return false, ErrNotStringValue.New("matches", r)
	}

	pattern := r.Raw().(string)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, ErrInvalidPattern.New(pattern, err)
	}
	return re.MatchString(l.Raw().(string)) != e.negate, nil
}

// StringLength produces the length of its string operand in runes.
type StringLength struct {
	UnaryExpression
}

// NewStringLength creates a stringLength operator.
func NewStringLength(child rule.Operand) *StringLength {
	return &StringLength{UnaryExpression{child}}
}

// Eval implements rule.Operand.
func (e *StringLength) Eval(ctx *rule.Context) (*rule.Value, error) {
	v, err := e.Child.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if v.Kind() != rule.KindString {
		return nil, ErrNotStringValue.New("stringLength", v)
	}
	return rule.NewValue(int64(utf8.RuneCountInString(v.Raw().(string)))), nil
}
