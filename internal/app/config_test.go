package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{
			name: "build",
			cfg:  Config{Command: CommandBuild, Paths: []string{"a.hcl"}, Output: "out.gdml"},
		},
		{
			name: "kinds needs no paths",
			cfg:  Config{Command: CommandKinds},
		},
		{
			name:   "check without paths",
			cfg:    Config{Command: CommandCheck},
			errMsg: "at least one configuration path",
		},
		{
			name:   "build without output",
			cfg:    Config{Command: CommandBuild, Paths: []string{"a.hcl"}},
			errMsg: "Output is a required",
		},
		{
			name:   "negative tolerance",
			cfg:    Config{Command: CommandCheck, Paths: []string{"a.hcl"}, Tolerance: -1},
			errMsg: "tolerance must not be negative",
		},
		{
			name:   "unknown command",
			cfg:    Config{Command: "render"},
			errMsg: `unknown command "render"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)

			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *cfg)
		})
	}
}
