package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageID(t *testing.T) {
	assert.Equal(t, 71, LanguageID("Python"))
	assert.Equal(t, 63, LanguageID("JavaScript"))
	assert.Equal(t, 60, LanguageID("Go"))

	// Unknown or empty languages fall back to the default.
	assert.Equal(t, DefaultLanguageID, LanguageID("Cobol"))
	assert.Equal(t, DefaultLanguageID, LanguageID(""))
}
