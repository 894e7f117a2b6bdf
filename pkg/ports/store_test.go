package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"chain", "grid-3x3", "model_1", "a.b"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "ns:key", " padded"} {
		assert.ErrorIs(t, ValidateName(bad), ErrInvalidName, bad)
	}
}
