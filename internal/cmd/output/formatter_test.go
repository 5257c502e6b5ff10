package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionInfo struct {
	Version  string `json:"version"`
	BuiltBy  string `json:"built_by"`
	Secret   string `json:"-"`
	internal string
	Count    *int `json:"count,omitempty"`
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	f, err := Resolve("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = Resolve("csv")
	assert.Error(t, err)
}

func TestRenderPicksView(t *testing.T) {
	raw := map[string]int{"count": 2}
	toTable := func(wide bool) Data {
		h := "narrow"
		if wide {
			h = "wide"
		}
		return Data{Headers: []string{h}, Rows: [][]string{{"cell"}}}
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, raw, toTable))
	assert.JSONEq(t, `{"count": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatYAML, raw, toTable))
	assert.Equal(t, "count: 2\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatWide, raw, toTable))
	assert.Contains(t, strings.ToUpper(buf.String()), "WIDE")
	assert.Contains(t, buf.String(), "cell")
}

func TestTableFormatterStructFallback(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.0.0", BuiltBy: "make", Secret: "hidden", internal: "x"}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, info))

	out := buf.String()
	assert.Contains(t, out, "1.0.0")
	assert.Contains(t, out, "Built By")
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "-"), "nil pointers render as a dash")
}

func TestTableFormatterSliceFallback(t *testing.T) {
	var buf bytes.Buffer
	rows := []versionInfo{{Version: "1.0.0"}, {Version: "1.1.0"}}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, rows))
	assert.Contains(t, buf.String(), "1.1.0")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, 42))

	var n int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &n))
	assert.Equal(t, 42, n)
}
