package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch_DecodesEachKind(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    BridgeMessage
	}{
		{"title", `[{"type":"title","title":"Page X"}]`, TitleMessage{Title: "Page X"}},
		{"navigate", `[{"type":"navigate","url":"https://example.org/"}]`, NavigateMessage{URL: "https://example.org/"}},
		{"loaded", `[{"type":"loaded","title":"T","url":"https://a/b"}]`, LoadedMessage{Title: "T", URL: "https://a/b"}},
		{"unknown type", `[{"type":"resize"}]`, UnknownMessage{Type: "resize"}},
		{"missing type", `[{"title":"x"}]`, UnknownMessage{}},
		{"type not a string", `[{"type":42}]`, UnknownMessage{}},
		{"element not an object", `["navigate"]`, UnknownMessage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, n, err := DecodeBatch([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestDecodeBatch_NonStringURLIsAbsent(t *testing.T) {
	msg, _, err := DecodeBatch([]byte(`[{"type":"navigate","url":{"href":"https://x"}}]`))
	require.NoError(t, err)
	assert.Equal(t, NavigateMessage{}, msg)
}

func TestDecodeBatch_OnlyFirstElementIsDecoded(t *testing.T) {
	msg, n, err := DecodeBatch([]byte(`[{"type":"title","title":"first"},{"type":"title","title":"second"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, TitleMessage{Title: "first"}, msg)
}

func TestDecodeBatch_Errors(t *testing.T) {
	_, _, err := DecodeBatch(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, _, err = DecodeBatch([]byte(`[]`))
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, _, err = DecodeBatch([]byte(`{"type":"title"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, _, err = DecodeBatch([]byte(`[{"type":`))
	assert.Error(t, err)
}

func TestEncodeBatch(t *testing.T) {
	data, err := EncodeBatch(NavigateMessage{URL: "https://example.org/a"}, TitleMessage{Title: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"navigate","url":"https://example.org/a"},{"type":"title","title":"x"}]`, string(data))
}
