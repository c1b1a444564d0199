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
	"gopkg.in/src-d/go-ruler.v0/rule"
)

// Not negates its single operand.
type Not struct {
	Child rule.Proposition
}

// NewNot creates a logical not.
func NewNot(child rule.Proposition) *Not {
	return &Not{child}
}

// Evaluate implements rule.Proposition.
func (n *Not) Evaluate(ctx *rule.Context) (bool, error) {
	if n.Child == nil {
		return false, ErrInvalidOperandCount.New("not", Unary, 0)
	}
	ok, err := n.Child.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// And holds when every operand holds. Evaluation is left to right and
// stops at the first false operand, before any error a later operand
// would raise.
type And struct {
	Children []rule.Proposition
}

// NewAnd creates a logical and over one or more propositions.
func NewAnd(children ...rule.Proposition) *And {
	return &And{children}
}

// Evaluate implements rule.Proposition.
func (a *And) Evaluate(ctx *rule.Context) (bool, error) {
	if err := checkArity("and", Multiple, len(a.Children)); err != nil {
		return false, err
	}
	for _, p := range a.Children {
		ok, err := p.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Or holds when any operand holds, stopping at the first true operand.
type Or struct {
	Children []rule.Proposition
}

// NewOr creates a logical or over one or more propositions.
func NewOr(children ...rule.Proposition) *Or {
	return &Or{children}
}

// Evaluate implements rule.Proposition.
func (o *Or) Evaluate(ctx *rule.Context) (bool, error) {
	if err := checkArity("or", Multiple, len(o.Children)); err != nil {
		return false, err
	}
	for _, p := range o.Children {
		ok, err := p.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Xor holds when exactly one operand holds. A second true operand decides
// the verdict, so evaluation stops there.
type Xor struct {
	Children []rule.Proposition
}

// NewXor creates a logical xor over one or more propositions.
func NewXor(children ...rule.Proposition) *Xor {
	return &Xor{children}
}

// Evaluate implements rule.Proposition.
func (x *Xor) Evaluate(ctx *rule.Context) (bool, error) {
	if err := checkArity("xor", Multiple, len(x.Children)); err != nil {
		return false, err
	}
	seen := false
	for _, p := range x.Children {
		ok, err := p.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if seen {
			return false, nil
		}
		seen = true
	}
	return seen, nil
}

// Nand is the negated conjunction: it holds as soon as any operand is
// false.
type Nand struct {
	Children []rule.Proposition
}

// NewNand creates a logical nand over one or more propositions.
func NewNand(children ...rule.Proposition) *Nand {
	return &Nand{children}
}

// Evaluate implements rule.Proposition.
func (n *Nand) Evaluate(ctx *rule.Context) (bool, error) {
	if err := checkArity("nand", Multiple, len(n.Children)); err != nil {
		return false, err
	}
	for _, p := range n.Children {
		ok, err := p.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
	return false, nil
}

// Nor is the negated disjunction: it fails as soon as any operand is
// true.
type Nor struct {
	Children []rule.Proposition
}

// NewNor creates a logical nor over one or more propositions.
func NewNor(children ...rule.Proposition) *Nor {
	return &Nor{children}
}

// Evaluate implements rule.Proposition.
func (n *Nor) Evaluate(ctx *rule.Context) (bool, error) {
	if err := checkArity("nor", Multiple, len(n.Children)); err != nil {
		return false, err
	}
	for _, p := range n.Children {
		ok, err := p.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}
