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

// Literal is a constant operand. The wrapped value is fixed at build time.
type Literal struct {
	ops
	value *rule.Value
}

// NewLiteral wraps a host value as a constant operand.
func NewLiteral(v interface{}) *Literal {
	l := &Literal{value: rule.NewValue(v)}
	l.ops.self = l
	return l
}

// Eval implements rule.Operand.
func (l *Literal) Eval(*rule.Context) (*rule.Value, error) {
	return l.value, nil
}

func (l *Literal) String() string {
	return l.value.String()
}
