package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain text", want: "plain text"},
		{in: "<b>bold</b> move", want: "bold move"},
		{in: `<img src=x onerror="alert(1)">Leave?`, want: "Leave?"},
		{in: "<script>alert(1)</script>Sure", want: "Sure"},
		{in: "Fish &amp; chips", want: "Fish & chips"},
		{in: "<p>one</p><p>two</p>", want: "onetwo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text{}.Clean(tt.in), tt.in)
	}
}
