package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev", Info{Version: "dev", BuildTime: "unknown", GoVersion: "go1.24.2"}, "fincast dev, go1.24.2"},
		{"release", Info{Version: "1.2.0", BuildTime: "2026-10-01", GoVersion: "go1.24.2", VCSRevision: "0123456789abcdef"},
			"fincast 1.2.0, built 2026-10-01, go1.24.2, commit 01234567"},
		{"dirty", Info{Version: "1.2.0", BuildTime: "unknown", VCSRevision: "abc", VCSModified: true}, "fincast 1.2.0, commit abc+dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestCheck(t *testing.T) {
	assert.Contains(t, Info{Version: "dev"}.Check(), "development build")
	assert.Contains(t, Info{Version: "1.0", VCSModified: true}.Check(), "modified source tree")
	assert.Empty(t, Info{Version: "1.0", VCSRevision: "abc"}.Check())
}

func TestGetDefaults(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, BuildTime, info.BuildTime)
}
