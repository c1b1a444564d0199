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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextRawFacts(t *testing.T) {
	require := require.New(t)

	ctx := NewContext(map[string]interface{}{"b": 2, "a": 1})

	v, err := ctx.Get("a")
	require.NoError(err)
	require.Equal(1, v)

	require.True(ctx.Has("b"))
	require.False(ctx.Has("c"))
	require.Equal([]string{"a", "b"}, ctx.Names())

	_, err = ctx.Get("c")
	require.Error(err)
	require.True(ErrKeyNotDefined.Is(err))
}

func TestContextFactory(t *testing.T) {
	require := require.New(t)

	calls := 0
	ctx := NewContext(nil)
	err := ctx.SetFactory("counter", func(*Context) interface{} {
		calls++
		return calls
	}, 0)
	require.NoError(err)

	v, err := ctx.Get("counter")
	require.NoError(err)
	require.Equal(1, v)

	// Plain factories run on every read.
	v, err = ctx.Get("counter")
	require.NoError(err)
	require.Equal(2, v)
	require.False(ctx.Frozen("counter"))
}

func TestContextSharedFactory(t *testing.T) {
	require := require.New(t)

	calls := 0
	ctx := NewContext(map[string]interface{}{"base": 10})
	err := ctx.SetFactory("derived", func(c *Context) interface{} {
		calls++
		base, err := c.Get("base")
		require.NoError(err)
		return base.(int) * 2
	}, SharedFlag)
	require.NoError(err)

	v, err := ctx.Get("derived")
	require.NoError(err)
	require.Equal(20, v)

	// Memoized and frozen after the first read.
	v, err = ctx.Get("derived")
	require.NoError(err)
	require.Equal(20, v)
	require.Equal(1, calls)
	require.True(ctx.Frozen("derived"))

	err = ctx.Set("derived", 99)
	require.Error(err)
	require.True(ErrKeyFrozen.Is(err))

	err = ctx.SetFactory("derived", func(*Context) interface{} { return nil }, 0)
	require.Error(err)
	require.True(ErrKeyFrozen.Is(err))
}

func TestContextProtectedFactory(t *testing.T) {
	require := require.New(t)

	factory := func(*Context) interface{} { return "invoked" }
	ctx := NewContext(nil)
	require.NoError(ctx.SetFactory("callback", factory, ProtectedFlag))

	v, err := ctx.Get("callback")
	require.NoError(err)

	f, ok := v.(Factory)
	require.True(ok)
	require.Equal("invoked", f(ctx))
}

func TestContextInvalidFactory(t *testing.T) {
	require := require.New(t)

	ctx := NewContext(nil)
	err := ctx.SetFactory("bad", nil, SharedFlag)
	require.Error(err)
	require.True(ErrNotInvokable.Is(err))
}

func TestContextSetOverwrites(t *testing.T) {
	require := require.New(t)

	ctx := NewContext(map[string]interface{}{"a": 1})
	require.NoError(ctx.Set("a", 2))

	v, err := ctx.Get("a")
	require.NoError(err)
	require.Equal(2, v)

	require.NoError(ctx.Set("b", 3))
	require.Equal([]string{"a", "b"}, ctx.Names())
}
