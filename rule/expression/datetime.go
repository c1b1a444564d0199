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
	"time"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

var (
	// ErrNotDate is returned when an operand cannot be read as an
	// instant.
	ErrNotDate = errors.NewKind("%s: %s is not a date")
	// ErrDateRange is returned when isBetweenDates receives a range that
	// is not a two-element collection.
	ErrDateRange = errors.NewKind("isBetweenDates: range must be a collection of two dates, got %s")
)

// dateLayouts are tried in order when parsing a textual date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"01/02/2006",
}

// asTime reads an operand value as an instant: time values pass through,
// strings are parsed against the supported layouts.
func asTime(name string, v *rule.Value) (time.Time, error) {
	if t, ok := v.Raw().(time.Time); ok {
		return t, nil
	}
	if v.Kind() == rule.KindString {
		s := v.Raw().(string)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, ErrNotDate.New(name, v)
}

// After holds when the left instant is strictly later than the right one.
type After struct {
	BinaryExpression
}

// NewAfter creates an after predicate.
func NewAfter(left, right rule.Operand) *After {
	return &After{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *After) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	a, err := asTime("after", l)
	if err != nil {
		return false, err
	}
	b, err := asTime("after", r)
	if err != nil {
		return false, err
	}
	return a.After(b), nil
}

// Before holds when the left instant is strictly earlier than the right
// one.
type Before struct {
	BinaryExpression
}

// NewBefore creates a before predicate.
func NewBefore(left, right rule.Operand) *Before {
	return &Before{BinaryExpression{left, right}}
}

// Evaluate implements rule.Proposition.
func (e *Before) Evaluate(ctx *rule.Context) (bool, error) {
	l, r, err := e.eval(ctx)
	if err != nil {
		return false, err
	}
	a, err := asTime("before", l)
	if err != nil {
		return false, err
	}
	b, err := asTime("before", r)
	if err != nil {
		return false, err
	}
	return a.Before(b), nil
}

// IsBetweenDates holds when the left instant lies inside the inclusive
// range given as a two-element collection on the right.
type IsBetweenDates struct {
	BinaryExpression
}

// NewIsBetweenDates creates an isBetweenDates predicate.
func NewIsBetweenDates(val, bounds rule.Operand) *IsBetweenDates {
	return &IsBetweenDates{BinaryExpression{val, bounds}}
}

// Evaluate implements rule.Proposition.
func (e *IsBetweenDates) Evaluate(ctx *rule.Context) (bool, error) {
	v, b, err := e.eval(ctx)
	if err != nil {
		return false, err
	}

	t, err := asTime("isBetweenDates", v)
	if err != nil {
		return false, err
	}

	if b.Kind() != rule.KindCollection {
		return false, ErrDateRange.New(b)
	}
	bounds := b.Items()
	if len(bounds) != 2 {
		return false, ErrDateRange.New(b)
	}
	lo, err := asTime("isBetweenDates", bounds[0])
	if err != nil {
		return false, err
	}
	hi, err := asTime("isBetweenDates", bounds[1])
	if err != nil {
		return false, err
	}
	return !t.Before(lo) && !t.After(hi), nil
}
