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
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

// ErrOperatorNotFound is returned when no registered namespace knows the
// requested symbol.
var ErrOperatorNotFound = errors.NewKind("operator not found: %s")

// Constructor builds an operator node from loosely-typed operands. It
// returns a rule.Proposition or a rule.Operand.
type Constructor func(operands ...interface{}) (interface{}, error)

// Namespace maps operator symbols to constructors. Lookups are
// case-insensitive.
type Namespace map[string]Constructor

// Registry resolves operator symbols through an ordered list of
// namespaces; the first namespace that knows a symbol wins.
type Registry struct {
	namespaces []Namespace
}

// NewRegistry creates a registry holding the default operator namespace.
func NewRegistry() *Registry {
	return &Registry{namespaces: []Namespace{DefaultNamespace()}}
}

// Register adds a namespace in front of the existing ones, so its symbols
// shadow earlier registrations.
func (r *Registry) Register(ns Namespace) {
	r.namespaces = append([]Namespace{ns}, r.namespaces...)
}

// Build instantiates the operator registered under symbol.
func (r *Registry) Build(symbol string, operands ...interface{}) (interface{}, error) {
	for _, ns := range r.namespaces {
		if c, ok := lookup(ns, symbol); ok {
			return c(operands...)
		}
	}
	return nil, ErrOperatorNotFound.New(symbol)
}

func lookup(ns Namespace, symbol string) (Constructor, bool) {
	if c, ok := ns[symbol]; ok {
		return c, true
	}
	for name, c := range ns {
		if strings.EqualFold(name, symbol) {
			return c, true
		}
	}
	return nil, false
}

func binaryOperands(name string, args []interface{}) (rule.Operand, rule.Operand, error) {
	if err := checkArity(name, Binary, len(args)); err != nil {
		return nil, nil, err
	}
	return operandOf(args[0]), operandOf(args[1]), nil
}

func unaryOperand(name string, args []interface{}) (rule.Operand, error) {
	if err := checkArity(name, Unary, len(args)); err != nil {
		return nil, err
	}
	return operandOf(args[0]), nil
}

func propositions(name string, args []interface{}) ([]rule.Proposition, error) {
	if err := checkArity(name, Multiple, len(args)); err != nil {
		return nil, err
	}
	out := make([]rule.Proposition, len(args))
	for i, a := range args {
		p, err := propositionOf(name, a)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func binary(name string, build func(l, r rule.Operand) interface{}) Constructor {
	return func(args ...interface{}) (interface{}, error) {
		l, r, err := binaryOperands(name, args)
		if err != nil {
			return nil, err
		}
		return build(l, r), nil
	}
}

func unary(name string, build func(c rule.Operand) interface{}) Constructor {
	return func(args ...interface{}) (interface{}, error) {
		c, err := unaryOperand(name, args)
		if err != nil {
			return nil, err
		}
		return build(c), nil
	}
}

func connective(name string, build func(ps ...rule.Proposition) interface{}) Constructor {
	return func(args ...interface{}) (interface{}, error) {
		ps, err := propositions(name, args)
		if err != nil {
			return nil, err
		}
		return build(ps...), nil
	}
}

// DefaultNamespace returns the namespace holding the whole built-in
// operator table under its stable symbols.
func DefaultNamespace() Namespace {
	return Namespace{
		// Comparison.
		"eq":      binary("eq", func(l, r rule.Operand) interface{} { return NewEqualTo(l, r) }),
		"ne":      binary("ne", func(l, r rule.Operand) interface{} { return NewNotEqualTo(l, r) }),
		"is":      binary("is", func(l, r rule.Operand) interface{} { return NewSameAs(l, r) }),
		"isNot":   binary("isNot", func(l, r rule.Operand) interface{} { return NewNotSameAs(l, r) }),
		"gt":      binary("gt", func(l, r rule.Operand) interface{} { return NewGreaterThan(l, r) }),
		"gte":     binary("gte", func(l, r rule.Operand) interface{} { return NewGreaterThanOrEqualTo(l, r) }),
		"lt":      binary("lt", func(l, r rule.Operand) interface{} { return NewLessThan(l, r) }),
		"lte":     binary("lte", func(l, r rule.Operand) interface{} { return NewLessThanOrEqualTo(l, r) }),
		"in":      binary("in", func(l, r rule.Operand) interface{} { return NewIn(l, r) }),
		"notIn":   binary("notIn", func(l, r rule.Operand) interface{} { return NewNotIn(l, r) }),
		"between": binary("between", func(l, r rule.Operand) interface{} { return NewBetween(l, r) }),

		// Logical.
		"not": func(args ...interface{}) (interface{}, error) {
			if err := checkArity("not", Unary, len(args)); err != nil {
				return nil, err
			}
			p, err := propositionOf("not", args[0])
			if err != nil {
				return nil, err
			}
			return NewNot(p), nil
		},
		"and":  connective("and", func(ps ...rule.Proposition) interface{} { return NewAnd(ps...) }),
		"or":   connective("or", func(ps ...rule.Proposition) interface{} { return NewOr(ps...) }),
		"xor":  connective("xor", func(ps ...rule.Proposition) interface{} { return NewXor(ps...) }),
		"nand": connective("nand", func(ps ...rule.Proposition) interface{} { return NewNand(ps...) }),
		"nor":  connective("nor", func(ps ...rule.Proposition) interface{} { return NewNor(ps...) }),

		// Mathematical.
		"add":          binary("add", func(l, r rule.Operand) interface{} { return NewAddition(l, r) }),
		"subtract":     binary("subtract", func(l, r rule.Operand) interface{} { return NewSubtraction(l, r) }),
		"multiply":     binary("multiply", func(l, r rule.Operand) interface{} { return NewMultiplication(l, r) }),
		"divide":       binary("divide", func(l, r rule.Operand) interface{} { return NewDivision(l, r) }),
		"modulo":       binary("modulo", func(l, r rule.Operand) interface{} { return NewModulo(l, r) }),
		"exponentiate": binary("exponentiate", func(l, r rule.Operand) interface{} { return NewExponentiate(l, r) }),
		"negate":       unary("negate", func(c rule.Operand) interface{} { return NewNegation(c) }),
		"abs":          unary("abs", func(c rule.Operand) interface{} { return NewAbs(c) }),
		"ceil":         unary("ceil", func(c rule.Operand) interface{} { return NewCeil(c) }),
		"floor":        unary("floor", func(c rule.Operand) interface{} { return NewFloor(c) }),
		"round": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, ErrInvalidOperandCount.New("round", "one or two operands", len(args))
			}
			var precision rule.Operand
			if len(args) == 2 {
				precision = operandOf(args[1])
			}
			return NewRound(operandOf(args[0]), precision), nil
		},
		"min": unary("min", func(c rule.Operand) interface{} { return NewMin(c) }),
		"max": unary("max", func(c rule.Operand) interface{} { return NewMax(c) }),

		// String.
		"contains":       binary("contains", func(l, r rule.Operand) interface{} { return NewStringContains(l, r) }),
		"doesNotContain": binary("doesNotContain", func(l, r rule.Operand) interface{} { return NewStringDoesNotContain(l, r) }),
		"icontains":      binary("icontains", func(l, r rule.Operand) interface{} { return NewStringContainsInsensitive(l, r) }),
		"doesNotContainInsensitive": binary("doesNotContainInsensitive", func(l, r rule.Operand) interface{} {
			return NewStringDoesNotContainInsensitive(l, r)
		}),
		"startsWith":   binary("startsWith", func(l, r rule.Operand) interface{} { return NewStartsWith(l, r) }),
		"istartsWith":  binary("istartsWith", func(l, r rule.Operand) interface{} { return NewStartsWithInsensitive(l, r) }),
		"endsWith":     binary("endsWith", func(l, r rule.Operand) interface{} { return NewEndsWith(l, r) }),
		"iendsWith":    binary("iendsWith", func(l, r rule.Operand) interface{} { return NewEndsWithInsensitive(l, r) }),
		"matches":      binary("matches", func(l, r rule.Operand) interface{} { return NewMatches(l, r) }),
		"doesNotMatch": binary("doesNotMatch", func(l, r rule.Operand) interface{} { return NewDoesNotMatch(l, r) }),
		"stringLength": unary("stringLength", func(c rule.Operand) interface{} { return NewStringLength(c) }),

		// Set.
		"union":     binary("union", func(l, r rule.Operand) interface{} { return NewUnion(l, r) }),
		"intersect": binary("intersect", func(l, r rule.Operand) interface{} { return NewIntersect(l, r) }),
		"complement": binary("complement", func(l, r rule.Operand) interface{} {
			return NewComplement(l, r)
		}),
		"symmetricDifference": binary("symmetricDifference", func(l, r rule.Operand) interface{} {
			return NewSymmetricDifference(l, r)
		}),
		"containsSubset": binary("containsSubset", func(l, r rule.Operand) interface{} {
			return NewContainsSubset(l, r)
		}),
		"doesNotContainSubset": binary("doesNotContainSubset", func(l, r rule.Operand) interface{} {
			return NewDoesNotContainSubset(l, r)
		}),
		"setContains": binary("setContains", func(l, r rule.Operand) interface{} { return NewSetContains(l, r) }),
		"setDoesNotContain": binary("setDoesNotContain", func(l, r rule.Operand) interface{} {
			return NewSetDoesNotContain(l, r)
		}),

		// Type.
		"isArray":    unary("isArray", func(c rule.Operand) interface{} { return NewIsArray(c) }),
		"isBoolean":  unary("isBoolean", func(c rule.Operand) interface{} { return NewIsBoolean(c) }),
		"isEmpty":    unary("isEmpty", func(c rule.Operand) interface{} { return NewIsEmpty(c) }),
		"isNull":     unary("isNull", func(c rule.Operand) interface{} { return NewIsNull(c) }),
		"isNumeric":  unary("isNumeric", func(c rule.Operand) interface{} { return NewIsNumeric(c) }),
		"isString":   unary("isString", func(c rule.Operand) interface{} { return NewIsString(c) }),
		"arrayCount": unary("arrayCount", func(c rule.Operand) interface{} { return NewArrayCount(c) }),

		// Date.
		"after":          binary("after", func(l, r rule.Operand) interface{} { return NewAfter(l, r) }),
		"before":         binary("before", func(l, r rule.Operand) interface{} { return NewBefore(l, r) }),
		"isBetweenDates": binary("isBetweenDates", func(l, r rule.Operand) interface{} { return NewIsBetweenDates(l, r) }),
	}
}
