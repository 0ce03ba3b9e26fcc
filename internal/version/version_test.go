package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CompatibleTableFormat(t *testing.T) {
	testCases := []struct {
		name      string
		declared  string
		expectErr bool
	}{
		{name: "current", declared: "1.0.0"},
		{name: "newer minor", declared: "1.4.2"},
		{name: "older major", declared: "0.9.0", expectErr: true},
		{name: "newer major", declared: "2.0.0", expectErr: true},
		{name: "not a version", declared: "tables", expectErr: true},
		{name: "missing patch", declared: "1.0", expectErr: true},
		{name: "empty", declared: "", expectErr: true},
		{name: "prerelease suffix", declared: "1.0.0-bogus", expectErr: true},
		{name: "trailing junk", declared: "1.0.0xyz", expectErr: true},
		{name: "build suffix", declared: "1.0.0+abc", expectErr: true},
		{name: "leading v", declared: "v1.0.0", expectErr: true},
		{name: "leading zero", declared: "01.0.0", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CompatibleTableFormat(tc.declared)

			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_TableFormat_IsCompatibleWithItself(t *testing.T) {
	assert.NoError(t, CompatibleTableFormat(TableFormat().Core()))
}
