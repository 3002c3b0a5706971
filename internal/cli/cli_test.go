package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mocurve/internal/cli"
)

type input struct {
	TaskID string  `json:"task_id"`
	Value  float64 `json:"value"`
}

func TestParseInputs(t *testing.T) {
	t.Parallel()

	in, isArray, err := cli.ParseInputs[input]([]byte(` {"task_id":"a","value":1.5} `))
	require.NoError(t, err)
	assert.False(t, isArray)
	assert.Equal(t, []input{{TaskID: "a", Value: 1.5}}, in)

	in, isArray, err = cli.ParseInputs[input]([]byte(`[{"task_id":"a"},{"task_id":"b"}]`))
	require.NoError(t, err)
	assert.True(t, isArray)
	assert.Len(t, in, 2)

	for _, raw := range []string{"", "  ", "[]", "{", "[1]"} {
		_, _, err := cli.ParseInputs[input]([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestReadInputAndWriteOutputs(t *testing.T) {
	t.Parallel()

	raw, err := cli.ReadInput("  ", strings.NewReader(`{"task_id":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"task_id":"x"}`, string(raw))

	var buf bytes.Buffer
	require.NoError(t, cli.WriteOutputs(&buf, []input{{TaskID: "x", Value: 2}}, false))
	assert.Equal(t, "{\"task_id\":\"x\",\"value\":2}\n", buf.String())

	buf.Reset()
	require.NoError(t, cli.WriteOutputs(&buf, []input{{TaskID: "x"}}, true))
	assert.Equal(t, "[{\"task_id\":\"x\",\"value\":0}]\n", buf.String())
}
