package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmbedURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "watch link becomes embed link",
			input:    "https://www.youtube.com/watch?v=ABC123",
			expected: "https://www.youtube.com/embed/ABC123",
		},
		{
			name:     "short link becomes embed link",
			input:    "https://youtu.be/ABC123",
			expected: "https://www.youtube.com/embed/ABC123",
		},
		{
			name:     "embed link passes through unchanged",
			input:    "https://www.youtube.com/embed/ABC123",
			expected: "https://www.youtube.com/embed/ABC123",
		},
		{
			name:     "non-youtube link passes through unchanged",
			input:    "https://vimeo.com/12345",
			expected: "https://vimeo.com/12345",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmbedURL(tt.input))
		})
	}
}
