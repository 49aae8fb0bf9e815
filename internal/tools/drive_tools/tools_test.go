package drive_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docpush/gdocs/internal/tools/common"
)

// The full GetAccountFromArgs matrix lives in internal/tools/common;
// this just confirms the shared helper is wired in here.
func TestAccountFromArgs(t *testing.T) {
	assert.Equal(t, "work", common.GetAccountFromArgs(map[string]interface{}{"account": "work"}))
	assert.Equal(t, "default", common.GetAccountFromArgs(nil))
}

func TestParseCommaList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single value", "a@example.com", []string{"a@example.com"}},
		{"multiple values", "a@example.com,b@example.com", []string{"a@example.com", "b@example.com"}},
		{"trims spaces", "a@example.com, b@example.com , c@example.com", []string{"a@example.com", "b@example.com", "c@example.com"}},
		{"drops empty entries", "a,,b,", []string{"a", "b"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommaList(tt.input))
		})
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"name":    "reports",
		"trashed": true,
		"count":   float64(3),
	}

	assert.Equal(t, "reports", stringArg(args, "name"))
	assert.Equal(t, "", stringArg(args, "missing"))
	assert.Equal(t, "", stringArg(args, "count"), "non-string value yields empty string")
	assert.True(t, boolArg(args, "trashed"))
	assert.False(t, boolArg(args, "missing"))
	assert.Equal(t, "", stringArg(nil, "name"))
}
