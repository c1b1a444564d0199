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

// Package ruler is a rule engine: it decides whether a fact record
// satisfies a rule, a tree of comparisons, string tests, arithmetic, set
// algebra and type predicates joined by boolean connectives. This package
// is the facade; the value model lives in rule and the operator library
// in rule/expression.
package ruler

import (
	"encoding/json"
	"io/ioutil"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"gopkg.in/src-d/go-ruler.v0/rule"
	"gopkg.in/src-d/go-ruler.v0/rule/parse"
)

// Config for the Engine.
type Config struct {
	// Logger receives one entry per evaluation. Defaults to the logrus
	// standard logger.
	Logger *logrus.Logger
	// Tracer opens a span around every evaluation. Defaults to the
	// global tracer.
	Tracer opentracing.Tracer
}

// Engine evaluates structured rules against fact records.
type Engine struct {
	log    *logrus.Entry
	tracer opentracing.Tracer
}

// New creates an engine with custom configuration. To create an Engine
// with the default settings use NewDefault.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	return &Engine{
		log:    logger.WithField("system", "ruler"),
		tracer: tracer,
	}
}

// NewDefault creates a new default Engine.
func NewDefault() *Engine {
	return New(nil)
}

// EvaluateFromMap compiles a structured rule tree and evaluates it
// against the facts.
func (e *Engine) EvaluateFromMap(node map[string]interface{}, facts map[string]interface{}) (bool, error) {
	span := e.tracer.StartSpan("ruler.evaluate")
	defer span.Finish()

	loader := parse.NewLoader(facts)
	prop, err := loader.Parse(node)
	if err != nil {
		span.SetTag("error", true)
		return false, err
	}

	matched, err := prop.Evaluate(rule.NewContext(facts))
	fields := logrus.Fields{"matched": matched}
	if err != nil {
		span.SetTag("error", true)
		fields["err"] = err
		e.log.WithFields(fields).Error("rule evaluation failed")
		return false, err
	}

	span.SetTag("matched", matched)
	e.log.WithFields(fields).Debug("rule evaluated")
	return matched, nil
}

// EvaluateFromJSON evaluates a JSON rule document against the facts.
func (e *Engine) EvaluateFromJSON(data []byte, facts map[string]interface{}) (bool, error) {
	var node map[string]interface{}
	if err := json.Unmarshal(data, &node); err != nil {
		return false, parse.ErrInvalidRule.Wrap(err, string(data))
	}
	return e.EvaluateFromMap(node, facts)
}

// EvaluateFromYAML evaluates a YAML rule document against the facts.
func (e *Engine) EvaluateFromYAML(data []byte, facts map[string]interface{}) (bool, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, parse.ErrInvalidRule.Wrap(err, string(data))
	}
	node, ok := parse.Normalize(doc).(map[string]interface{})
	if !ok {
		return false, parse.ErrInvalidRule.New(doc)
	}
	return e.EvaluateFromMap(node, facts)
}

// EvaluateFromJSONFile evaluates the JSON rule document at path.
func (e *Engine) EvaluateFromJSONFile(path string, facts map[string]interface{}) (bool, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return false, err
	}
	return e.EvaluateFromJSON(data, facts)
}

// EvaluateFromYAMLFile evaluates the YAML rule document at path.
func (e *Engine) EvaluateFromYAMLFile(path string, facts map[string]interface{}) (bool, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return false, err
	}
	return e.EvaluateFromYAML(data, facts)
}
