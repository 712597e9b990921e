package argv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_Validate(t *testing.T) {
	require.NoError(t, buildOp().Validate())
	require.NoError(t, blobsOp().Validate())

	tests := []struct {
		name   string
		mutate func(*Operation)
		errMsg string
	}{
		{
			name:   "missing name",
			mutate: func(o *Operation) { o.Name = "" },
			errMsg: "Name",
		},
		{
			name:   "missing description",
			mutate: func(o *Operation) { o.Description = "" },
			errMsg: "Description",
		},
		{
			name:   "flag kind without flag",
			mutate: func(o *Operation) { o.Params[3].Flag = "" },
			errMsg: "requires a flag",
		},
		{
			name:   "positional with flag",
			mutate: func(o *Operation) { o.Params[0].Flag = "-s" },
			errMsg: "cannot have a flag",
		},
		{
			name:   "flag token without dash",
			mutate: func(o *Operation) { o.Params[1].Flag = "b" },
			errMsg: "Flag",
		},
		{
			name:   "duplicate param",
			mutate: func(o *Operation) { o.Params[2].Name = "board" },
			errMsg: "duplicate param",
		},
		{
			name: "two passthrough groups",
			mutate: func(o *Operation) {
				o.Params = append(o.Params, Param{Name: "more", Kind: KindPassthrough})
			},
			errMsg: "at most one passthrough",
		},
		{
			name: "condition on unknown param",
			mutate: func(o *Operation) {
				o.Params[2].When = &Condition{Param: "ghost", Values: []string{"x"}}
			},
			errMsg: "unknown param",
		},
		{
			name: "condition on list param",
			mutate: func(o *Operation) {
				o.Params[2].When = &Condition{Param: "shield", Values: []string{"x"}}
			},
			errMsg: "must be a scalar",
		},
		{
			name:   "unsupported result",
			mutate: func(o *Operation) { o.Result = "table" },
			errMsg: "Result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := buildOp()
			tt.mutate(op)
			err := op.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOperation_ResultKind(t *testing.T) {
	op := buildOp()
	assert.Equal(t, ResultExecution, op.ResultKind())
	op.Result = ResultInventory
	assert.Equal(t, ResultInventory, op.ResultKind())
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t,
		"blobs <subcommand> [--module <module>...] [-f <format_string>] [-a]",
		blobsOp().String())
}

func TestKind_TextRoundTrip(t *testing.T) {
	for k, name := range kindNames {
		text, err := k.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var parsed Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("switch")))
	_, err := Kind(99).MarshalText()
	assert.Error(t, err)
}

func TestKind_JSON(t *testing.T) {
	data, err := json.Marshal(Param{Name: "force", Kind: KindFlag, Flag: "-f"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"force","kind":"flag","flag":"-f"}`, string(data))
}
