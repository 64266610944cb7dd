package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widget.git", "widget"},
		{"https://github.com/acme/widget", "widget"},
		{"https://github.com/acme/widget/", "widget"},
		{"git@github.com:acme/widget.git", "widget"},
		{"", "repo"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, repoName(tt.url), "url %q", tt.url)
	}
}
