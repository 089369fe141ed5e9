package providers

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCachePattern_ScopesToOneMember(t *testing.T) {
	tests := []struct {
		name     string
		memberID string
		matches  []string
		skips    []string
	}{
		{
			name:     "plain id",
			memberID: "m-1",
			matches:  []string{"m-1"},
			skips:    []string{"m-10", "m-2"},
		},
		{
			name:     "star",
			memberID: "m*",
			matches:  []string{"m*"},
			skips:    []string{"m-2", "member"},
		},
		{
			name:     "question mark",
			memberID: "m?",
			matches:  []string{"m?"},
			skips:    []string{"m1"},
		},
		{
			name:     "brackets",
			memberID: "[ab]",
			matches:  []string{"[ab]"},
			skips:    []string{"a", "b"},
		},
		{
			name:     "backslash",
			memberID: `m\1`,
			matches:  []string{`m\1`},
			skips:    []string{"m1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := HTTPCachePattern(MemberCacheScope(tt.memberID))
			for _, id := range tt.matches {
				ok, err := path.Match(pattern, HTTPCachePrefix+MemberCacheScope(id)+":abc123")
				require.NoError(t, err)
				assert.True(t, ok, id)
			}
			for _, id := range tt.skips {
				ok, err := path.Match(pattern, HTTPCachePrefix+MemberCacheScope(id)+":abc123")
				require.NoError(t, err)
				assert.False(t, ok, id)
			}
		})
	}
}

func TestHTTPCachePattern_PlainScope(t *testing.T) {
	assert.Equal(t, "http:cache:products:*", HTTPCachePattern("products"))
	assert.Equal(t, `http:cache:member:m\*:*`, HTTPCachePattern(MemberCacheScope("m*")))
}
