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

func TestVariableEval(t *testing.T) {
	require := require.New(t)

	ctx := rule.NewContext(map[string]interface{}{"age": 25})

	v := eval(t, NewVariable("age", nil), ctx)
	require.Equal(int64(25), v.Raw())

	// Unknown names fall back to the default.
	v = eval(t, NewVariable("missing", 18), ctx)
	require.Equal(int64(18), v.Raw())

	// A nameless variable always yields its default.
	v = eval(t, NewVariable("", "fallback"), ctx)
	require.Equal("fallback", v.Raw())
}

type testUser struct {
	Name string
	Tags []string
}

func (u testUser) Plan() string { return "pro" }

type fancyMap map[string]interface{}

func (fancyMap) Label() string { return "from method" }

func TestVariablePropertyPriority(t *testing.T) {
	require := require.New(t)

	ctx := rule.NewContext(map[string]interface{}{
		"user":  testUser{Name: "ada", Tags: []string{"a", "b"}},
		"thing": fancyMap{"label": "from key", "other": 1},
		"fn":    func() string { return "callable" },
	})

	user := NewVariable("user", nil)

	// Zero-arg methods resolve first.
	require.Equal("pro", eval(t, user.Property("plan"), ctx).Raw())

	// Then exported fields, looked up from the lower-case name.
	require.Equal("ada", eval(t, user.Property("name"), ctx).Raw())

	// Keyed access into slices.
	require.Equal("b", eval(t, user.Property("tags").Property("1"), ctx).Raw())

	// A method shadows a map key of the same name.
	thing := NewVariable("thing", nil)
	require.Equal("from method", eval(t, thing.Property("label"), ctx).Raw())
	require.Equal(int64(1), eval(t, thing.Property("other"), ctx).Raw())

	// Bare funcs are opaque scalars, never navigated.
	require.True(eval(t, NewVariable("fn", nil).Property("anything"), ctx).IsNull())

	// Anything unresolvable yields the default.
	require.True(eval(t, user.Property("missing"), ctx).IsNull())
	withDefault := NewVariableProperty(user, "missing", "none")
	require.Equal("none", eval(t, withDefault, ctx).Raw())
}

func TestVariablePropertyNestedMaps(t *testing.T) {
	require := require.New(t)

	ctx := rule.NewContext(map[string]interface{}{
		"user": map[string]interface{}{
			"profile": map[string]interface{}{"age": 30},
		},
	})

	v := NewVariable("user", nil)
	age := v.Property("profile").Property("age")
	require.Equal(int64(30), eval(t, age, ctx).Raw())

	chained := v.PropertyChain("profile.age")
	require.Equal(int64(30), eval(t, chained, ctx).Raw())
}

func TestVariablePropertyIdentity(t *testing.T) {
	require := require.New(t)

	v := NewVariable("user", nil)
	p1 := v.Property("profile")
	p2 := v.Property("profile")
	require.True(p1 == p2)

	c1 := p1.Property("age")
	c2 := p2.Property("age")
	require.True(c1 == c2)
}
