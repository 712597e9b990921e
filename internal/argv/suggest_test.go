package argv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	shells := []string{"bash", "fish", "powershell", "zsh"}
	blobs := []string{"list", "fetch", "clean"}

	tests := []struct {
		value   string
		allowed []string
		want    string
	}{
		{"fetc", blobs, "fetch"},
		{"fecth", blobs, "fetch"},
		{"FETCH", blobs, "fetch"},
		{"lst", blobs, "list"},
		{"powershel", shells, "powershell"},
		{"tcsh", shells, ""},
		{"cmd", shells, ""},
		{"", blobs, ""},
		{"fetch", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.value, tt.allowed))
		})
	}
}
