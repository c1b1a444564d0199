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

package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

func parseAndEvaluate(t *testing.T, node map[string]interface{}, facts map[string]interface{}) (bool, error) {
	t.Helper()
	p, err := NewLoader(facts).Parse(node)
	if err != nil {
		return false, err
	}
	return p.Evaluate(rule.NewContext(facts))
}

func TestParseAgeGate(t *testing.T) {
	node := map[string]interface{}{
		"combinator": "and",
		"value": []interface{}{
			map[string]interface{}{"operator": "gte", "field": "age", "value": 18},
			map[string]interface{}{"operator": "eq", "field": "country", "value": "US"},
		},
	}

	testCases := []struct {
		name     string
		facts    map[string]interface{}
		expected bool
	}{
		{"adult US", map[string]interface{}{"age": 25, "country": "US"}, true},
		{"minor US", map[string]interface{}{"age": 17, "country": "US"}, false},
		{"adult CA", map[string]interface{}{"age": 25, "country": "CA"}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ok, err := parseAndEvaluate(t, node, tt.facts)
			require.NoError(err)
			require.Equal(tt.expected, ok)
		})
	}
}

func TestParseNotCombinator(t *testing.T) {
	require := require.New(t)

	node := map[string]interface{}{
		"combinator": "not",
		"value": []interface{}{
			map[string]interface{}{"operator": "eq", "field": "status", "value": "banned"},
		},
	}

	ok, err := parseAndEvaluate(t, node, map[string]interface{}{"status": "active"})
	require.NoError(err)
	require.True(ok)

	ok, err = parseAndEvaluate(t, node, map[string]interface{}{"status": "banned"})
	require.NoError(err)
	require.False(ok)
}

func TestParseXorCombinator(t *testing.T) {
	node := map[string]interface{}{
		"combinator": "xor",
		"value": []interface{}{
			map[string]interface{}{"operator": "eq", "field": "a", "value": 1},
			map[string]interface{}{"operator": "eq", "field": "b", "value": 2},
		},
	}

	testCases := []struct {
		name     string
		facts    map[string]interface{}
		expected bool
	}{
		{"exactly one", map[string]interface{}{"a": 1, "b": 0}, true},
		{"both", map[string]interface{}{"a": 1, "b": 2}, false},
		{"neither", map[string]interface{}{"a": 0, "b": 0}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ok, err := parseAndEvaluate(t, node, tt.facts)
			require.NoError(err)
			require.Equal(tt.expected, ok)
		})
	}
}

func TestParseNestedField(t *testing.T) {
	require := require.New(t)

	node := map[string]interface{}{
		"operator": "gte",
		"field":    "user.profile.age",
		"value":    18,
	}
	facts := map[string]interface{}{
		"user": map[string]interface{}{
			"profile": map[string]interface{}{"age": 30},
		},
	}

	ok, err := parseAndEvaluate(t, node, facts)
	require.NoError(err)
	require.True(ok)
}

func TestParseContainsSubset(t *testing.T) {
	require := require.New(t)

	facts := map[string]interface{}{"tags": []interface{}{"a", "b", "c"}}

	ok, err := parseAndEvaluate(t, map[string]interface{}{
		"operator": "containsSubset",
		"field":    "tags",
		"value":    []interface{}{"a", "c"},
	}, facts)
	require.NoError(err)
	require.True(ok)

	ok, err = parseAndEvaluate(t, map[string]interface{}{
		"operator": "containsSubset",
		"field":    "tags",
		"value":    []interface{}{"a", "d"},
	}, facts)
	require.NoError(err)
	require.False(ok)
}

func TestParseUnaryOperatorNode(t *testing.T) {
	require := require.New(t)

	ok, err := parseAndEvaluate(t, map[string]interface{}{
		"operator": "isNull",
		"field":    "missing",
	}, map[string]interface{}{"present": 1})
	require.NoError(err)
	require.True(ok)
}

func TestParseValueResolution(t *testing.T) {
	require := require.New(t)

	facts := map[string]interface{}{
		"country": "US",
		"minAge":  21,
		"age":     25,
		"geo":     map[string]interface{}{"country": "US"},
	}

	// A dotted string is substituted from the facts at compile time.
	ok, err := parseAndEvaluate(t, map[string]interface{}{
		"operator": "eq",
		"field":    "country",
		"value":    "geo.country",
	}, facts)
	require.NoError(err)
	require.True(ok)

	// A bare fact key becomes a late-bound variable reference.
	ok, err = parseAndEvaluate(t, map[string]interface{}{
		"operator": "gte",
		"field":    "age",
		"value":    "minAge",
	}, facts)
	require.NoError(err)
	require.True(ok)

	// Anything else stays a literal string.
	ok, err = parseAndEvaluate(t, map[string]interface{}{
		"operator": "eq",
		"field":    "country",
		"value":    "FR",
	}, facts)
	require.NoError(err)
	require.False(ok)

	// A dotted string that resolves nowhere stays literal too.
	ok, err = parseAndEvaluate(t, map[string]interface{}{
		"operator": "eq",
		"field":    "country",
		"value":    "geo.region",
	}, facts)
	require.NoError(err)
	require.False(ok)
}

func TestParseErrors(t *testing.T) {
	require := require.New(t)
	loader := NewLoader(nil)

	_, err := loader.Parse(map[string]interface{}{"neither": true})
	require.Error(err)
	require.True(ErrInvalidRule.Is(err))

	_, err = loader.Parse("not a node")
	require.Error(err)
	require.True(ErrInvalidRule.Is(err))

	_, err = loader.Parse(map[string]interface{}{
		"combinator": "not",
		"value": []interface{}{
			map[string]interface{}{"operator": "isNull", "field": "a"},
			map[string]interface{}{"operator": "isNull", "field": "b"},
		},
	})
	require.Error(err)
	require.True(ErrInvalidNotRule.Is(err))

	_, err = loader.Parse(map[string]interface{}{
		"combinator": "maybe",
		"value": []interface{}{
			map[string]interface{}{"operator": "isNull", "field": "a"},
		},
	})
	require.Error(err)
	require.True(ErrUnknownCombinator.Is(err))

	_, err = loader.Parse(map[string]interface{}{
		"operator": "definitelyNotAnOperator",
		"field":    "a",
		"value":    1,
	})
	require.Error(err)
}

func TestParseYAMLStyleMaps(t *testing.T) {
	require := require.New(t)

	// YAML decoders produce map[interface{}]interface{} nodes.
	node := map[string]interface{}{
		"combinator": "and",
		"value": []interface{}{
			map[interface{}]interface{}{"operator": "gte", "field": "age", "value": 18},
		},
	}

	ok, err := parseAndEvaluate(t, node, map[string]interface{}{"age": 30})
	require.NoError(err)
	require.True(ok)
}

func TestNormalizeWholeNumbers(t *testing.T) {
	require := require.New(t)

	require.Equal(int64(18), Normalize(18.0))
	require.Equal(2.5, Normalize(2.5))
}
