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
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrNoCondition is returned when a rule without a condition is
	// evaluated.
	ErrNoCondition = errors.NewKind("rule %s has no condition")
	// ErrInvalidAction is returned by Execute when the rule's action is
	// not a supported callable.
	ErrInvalidAction = errors.NewKind("rule %s has an invalid action of type %T")
)

// Rule pairs a condition with an optional action. The action may be a
// func(*Context) error or a func(*Context); anything else fails on
// Execute with ErrInvalidAction.
type Rule struct {
	id        string
	Condition Proposition
	Action    interface{}
}

// NewRule creates a rule with a fresh id. A nil action is allowed and
// makes Execute a pure evaluation.
func NewRule(condition Proposition, action interface{}) *Rule {
	return &Rule{
		id:        uuid.NewV4().String(),
		Condition: condition,
		Action:    action,
	}
}

// ID returns the rule's identifier, used in logs.
func (r *Rule) ID() string { return r.id }

// Evaluate resolves the rule's condition against the context.
func (r *Rule) Evaluate(ctx *Context) (bool, error) {
	if r.Condition == nil {
		return false, ErrNoCondition.New(r.id)
	}
	return r.Condition.Evaluate(ctx)
}

// Execute evaluates the rule and runs its action when the condition holds.
func (r *Rule) Execute(ctx *Context) error {
	ok, err := r.Evaluate(ctx)
	if err != nil || !ok {
		return err
	}

	return r.runAction(ctx)
}

func (r *Rule) runAction(ctx *Context) error {
	switch action := r.Action.(type) {
	case nil:
		return nil
	case func(*Context) error:
		return action(ctx)
	case func(*Context):
		action(ctx)
		return nil
	default:
		return ErrInvalidAction.New(r.id, r.Action)
	}
}

// RuleSet is an insertion-ordered collection of rules deduplicated by rule
// identity: adding the same *Rule twice is a no-op, while two rules that
// are equal by value but distinct objects are both kept.
type RuleSet struct {
	rules []*Rule
	seen  map[*Rule]struct{}
	log   *logrus.Entry
}

// NewRuleSet creates a rule set holding the given rules.
func NewRuleSet(rules ...*Rule) *RuleSet {
	s := &RuleSet{
		seen: make(map[*Rule]struct{}),
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, r := range rules {
		s.Add(r)
	}
	return s
}

// WithLogger replaces the logger used by ExecuteRules.
func (s *RuleSet) WithLogger(l *logrus.Logger) *RuleSet {
	s.log = logrus.NewEntry(l)
	return s
}

// Add appends a rule unless this exact rule object is already present.
func (s *RuleSet) Add(r *Rule) {
	if _, ok := s.seen[r]; ok {
		return
	}
	s.seen[r] = struct{}{}
	s.rules = append(s.rules, r)
}

// Len returns the number of distinct rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// Rules returns the rules in insertion order.
func (s *RuleSet) Rules() []*Rule {
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// ExecuteRules runs every rule in insertion order, stopping at the first
// failure.
func (s *RuleSet) ExecuteRules(ctx *Context) error {
	for _, r := range s.rules {
		matched, err := r.Evaluate(ctx)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"rule": r.ID(),
				"err":  err,
			}).Error("rule evaluation failed")
			return err
		}

		s.log.WithFields(logrus.Fields{
			"rule":    r.ID(),
			"matched": matched,
		}).Debug("rule evaluated")

		if !matched {
			continue
		}
		if err := r.runAction(ctx); err != nil {
			return err
		}
	}
	return nil
}
