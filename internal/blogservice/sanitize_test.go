package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text untouched", input: "# Hello\n\nsome *markdown*", expected: "# Hello\n\nsome *markdown*"},
		{name: "script tag stripped", input: `before<script>alert(1)</script>after`, expected: "beforeafter"},
		{name: "mixed case", input: `<SCRIPT src="x">boom</SCRIPT>`, expected: ""},
		{name: "spaced closing tag", input: `<script>x< / script >`, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}
