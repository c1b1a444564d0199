package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-ruler.v0/rule"
)

func eval(t *testing.T, op rule.Operand, ctx *rule.Context) *rule.Value {
	t.Helper()
	v, err := op.Eval(ctx)
	require.NoError(t, err)
	return v
}

func evaluate(t *testing.T, p rule.Proposition, ctx *rule.Context) bool {
	t.Helper()
	ok, err := p.Evaluate(ctx)
	require.NoError(t, err)
	return ok
}

// countingProp records how often it was queried, to observe
// short-circuiting.
type countingProp struct {
	verdict bool
	calls   int
}

func (p *countingProp) Evaluate(*rule.Context) (bool, error) {
	p.calls++
	return p.verdict, nil
}

// failingProp always errors, to observe that short-circuit wins over
// errors in unevaluated branches.
type failingProp struct{}

func (failingProp) Evaluate(*rule.Context) (bool, error) {
	return false, rule.ErrNotBoolean.New("boom")
}
