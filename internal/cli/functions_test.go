package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/catalog"
)

func TestFunctionsCommandText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFunctionsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--family", "boolean"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "op:boolean-less-than")
	assert.Contains(t, out, "xs:boolean, xs:boolean")
	assert.NotContains(t, out, "op:numeric-add")
	assert.Contains(t, out, "(6 functions)")
}

func TestFunctionsCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFunctionsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string             `json:"status"`
		Data   []catalog.Function `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	cat, err := catalog.Load()
	require.NoError(t, err)
	assert.Len(t, resp.Data, cat.Len())

	names := make([]string, len(resp.Data))
	for i, f := range resp.Data {
		names[i] = f.Name
	}
	assert.IsNonDecreasing(t, names)
}

func TestFunctionsCommandUnknownFamily(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFunctionsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--family", "string"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "(0 functions)\n", buf.String())
}
