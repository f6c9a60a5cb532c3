package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToolID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"service.tool", "filesystem.list", false},
		{"hyphen and underscore", "file-system.list_all", false},
		{"empty", "", true},
		{"slash", "filesystem/list", true},
		{"space", "filesystem list", true},
		{"too long", strings.Repeat("a", MaxToolIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToolID(tt.id, "tool_id", true)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("", false))
	assert.NoError(t, ValidateCategory("filesystem", false))
	assert.Error(t, ValidateCategory("FileSystem", false))
	assert.Error(t, ValidateCategory("", true))
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, ValidateParams(nil))
	assert.NoError(t, ValidateParams(map[string]interface{}{"path": "/Users/me", "depth": 3}))

	assert.Error(t, ValidateParams(map[string]interface{}{"path": strings.Repeat("x", MaxPathLength+1)}))
	assert.Error(t, ValidateParams(map[string]interface{}{"path": "bad\xff"}))

	many := map[string]interface{}{}
	for i := 0; i <= MaxParamCount; i++ {
		many[strings.Repeat("k", i+1)] = "v"
	}
	assert.Error(t, ValidateParams(many))
}
