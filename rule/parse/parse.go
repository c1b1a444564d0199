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

// Package parse turns structured rule trees, maps of combinator and
// operator nodes as produced by JSON or YAML front-ends, into evaluable
// propositions.
package parse

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
	"gopkg.in/src-d/go-ruler.v0/rule/expression"
)

var (
	// ErrInvalidRule is returned for nodes that are neither combinator
	// nor operator nodes.
	ErrInvalidRule = errors.NewKind("invalid rule structure: %v")
	// ErrInvalidNotRule is returned when a not combinator does not have
	// exactly one child.
	ErrInvalidNotRule = errors.NewKind("invalid not rule: expected one child, got %d")
	// ErrUnknownCombinator is returned for combinators outside and, or,
	// xor and not.
	ErrUnknownCombinator = errors.NewKind("unknown combinator: %s")
)

// Loader compiles structured rule trees against a fact record. The facts
// drive value resolution: dotted strings are substituted at compile time
// and bare fact keys become late-bound variables.
type Loader struct {
	builder *expression.Builder
	facts   map[string]interface{}
}

// NewLoader creates a loader for the given fact record.
func NewLoader(facts map[string]interface{}) *Loader {
	return &Loader{
		builder: expression.NewBuilder(),
		facts:   facts,
	}
}

// Builder exposes the loader's builder so custom operator namespaces can
// be registered before parsing.
func (l *Loader) Builder() *expression.Builder {
	return l.builder
}

// Parse compiles a structured node into a proposition.
func (l *Loader) Parse(node interface{}) (rule.Proposition, error) {
	m, ok := Normalize(node).(map[string]interface{})
	if !ok {
		return nil, ErrInvalidRule.New(node)
	}

	if combinator, ok := m["combinator"]; ok {
		return l.parseCombinator(cast.ToString(combinator), m["value"])
	}

	if operator, ok := m["operator"]; ok {
		return l.parseOperator(cast.ToString(operator), m)
	}

	return nil, ErrInvalidRule.New(node)
}

func (l *Loader) parseCombinator(combinator string, value interface{}) (rule.Proposition, error) {
	children, ok := value.([]interface{})
	if !ok {
		return nil, ErrInvalidRule.New(value)
	}

	props := make([]rule.Proposition, 0, len(children))
	for _, child := range children {
		p, err := l.Parse(child)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	switch combinator {
	case "not":
		if len(props) != 1 {
			return nil, ErrInvalidNotRule.New(len(props))
		}
		return expression.NewNot(props[0]), nil
	case "and":
		if len(props) < 1 {
			return nil, ErrInvalidRule.New(value)
		}
		return expression.NewAnd(props...), nil
	case "or":
		if len(props) < 1 {
			return nil, ErrInvalidRule.New(value)
		}
		return expression.NewOr(props...), nil
	case "xor":
		if len(props) < 1 {
			return nil, ErrInvalidRule.New(value)
		}
		return expression.NewXor(props...), nil
	}
	return nil, ErrUnknownCombinator.New(combinator)
}

func (l *Loader) parseOperator(operator string, node map[string]interface{}) (rule.Proposition, error) {
	field, ok := node["field"]
	if !ok {
		return nil, ErrInvalidRule.New(node)
	}

	operands := []interface{}{l.fieldOperand(field)}
	if value, ok := node["value"]; ok {
		operands = append(operands, l.valueOperand(value))
	}

	built, err := l.builder.Operator(operator, operands...)
	if err != nil {
		return nil, err
	}
	return expression.AsProposition(built)
}

func (l *Loader) fieldOperand(field interface{}) interface{} {
	s, ok := field.(string)
	if !ok {
		return expression.NewLiteral(field)
	}
	return l.builder.Field(s)
}

// valueOperand resolves an operator node's value: a dotted string is
// substituted from the facts at compile time, a bare fact key becomes a
// late-bound variable and anything else stays literal.
func (l *Loader) valueOperand(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return expression.NewLiteral(value)
	}

	if strings.Contains(s, ".") {
		if v, ok := deepLookup(l.facts, s); ok {
			return expression.NewLiteral(v)
		}
		return expression.NewLiteral(s)
	}

	if _, ok := l.facts[s]; ok {
		return l.builder.Var(s)
	}

	return expression.NewLiteral(s)
}

// deepLookup walks a dotted path through nested maps and slices.
func deepLookup(facts map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = facts
	for _, part := range strings.Split(path, ".") {
		switch t := Normalize(cur).(type) {
		case map[string]interface{}:
			v, ok := t[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Normalize converts YAML-style map[interface{}]interface{} trees into
// map[string]interface{} so JSON and YAML inputs parse the same way.
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[cast.ToString(k)] = Normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case float64:
		// JSON has no integer type; whole numbers come back as floats
		// and would never be strictly equal to integer facts.
		if t == math.Trunc(t) && t >= math.MinInt64 && t <= math.MaxInt64 {
			return int64(t)
		}
	}
	return v
}
