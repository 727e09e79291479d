package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStockCode(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"2330", true},
		{"2330.TW", true},
		{"2330.TWO", true},
		{" 2330 ", true},
		{"abc", false},
		{"233", false},
		{"23300", false},
		{"2330.US", false},
		{"2330.tw", false},
		{"２３３０", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStockCode(tt.token), "token %q", tt.token)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2330.TW", Normalize("2330"))
	assert.Equal(t, "2330.TW", Normalize(" 2330\n"))
	assert.Equal(t, "2330.TWO", Normalize("2330.TWO"))
	assert.Equal(t, "2330.TW", Normalize("2330.TW"))
}

func TestExtract(t *testing.T) {
	assert.Equal(t, []string{"2330.TW", "6488.TWO", "2317.TW"},
		Extract("2330, 6488.TWO，2317 hello 2330.TW"))
	assert.Empty(t, Extract("早安 how are you"))
	assert.Empty(t, Extract(""))
}
