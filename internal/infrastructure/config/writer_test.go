package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var sections []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			sections = append(sections, trimmed)
		}
	}
	require.NotEmpty(t, sections)
	for i := 1; i < len(sections); i++ {
		assert.LessOrEqual(t, sections[i-1], sections[i])
	}
	assert.Contains(t, string(content), "host_object = 'wx.miniProgram'")
}

func TestSortTOMLSections(t *testing.T) {
	input := `title = 'x'

[zeta]
a = 1

[alpha]
b = 2
`
	want := `title = 'x'

[alpha]
b = 2

[zeta]
a = 1
`
	assert.Equal(t, want, sortTOMLSections(input))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "chaoxe configuration", doc["title"])
	assert.Contains(t, string(data), "dev_server")
	assert.Contains(t, string(data), "host_object")
}
