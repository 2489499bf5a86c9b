package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Shop&lt;/b&gt;", SanitizeString("  <b>Shop</b> "))
	assert.Equal(t, "ada@example.com", SanitizeEmail(" <i>Ada@Example.COM</i> "))
	assert.Equal(t, "line one\nline two", SanitizeText("line one\nline two\x00"))
	assert.Equal(t, "https://cdn.example.com/logo.png?a=1&b=2", SanitizeReference(" https://cdn.example.com/logo.png?a=1&b=2 "))

	assert.Nil(t, SanitizeOptional(nil, SanitizeString))
	value := " ada "
	assert.Equal(t, "ada", *SanitizeOptional(&value, SanitizeString))
}
