package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("hr@acme.com"))
	assert.True(t, ValidateEmail("placements@tech.ac.in"))

	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@acme.com"))
}

func TestValidateISODate(t *testing.T) {
	assert.True(t, ValidateISODate(""), "empty dates are allowed, the field is optional")
	assert.True(t, ValidateISODate("2026-09-01"))
	assert.True(t, ValidateISODate("2000-02-29"), "leap day")

	assert.False(t, ValidateISODate("2026-13-01"))
	assert.False(t, ValidateISODate("2026-02-30"))
	assert.False(t, ValidateISODate("01/09/2026"))
	assert.False(t, ValidateISODate("September 1, 2026"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("hel\x00lo"))
	assert.Equal(t, "", SanitizeString("   "))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "Hello team", StripHTML("<b>Hello</b> team"))
	assert.Equal(t, "nested content here", StripHTML("<div><p>nested <em>content</em> here</p></div>"))
	assert.Equal(t, "", StripHTML("<img src=x onerror=alert(1)>"))
	assert.NotContains(t, StripHTML("<script>payload()</script>safe"), "<script>")
}

func TestValidatePassword(t *testing.T) {
	ok, errs := ValidatePassword("longenough1")
	assert.True(t, ok)
	assert.Empty(t, errs)

	ok, errs = ValidatePassword("short")
	assert.False(t, ok)
	assert.NotEmpty(t, errs)

	ok, _ = ValidatePassword("12345678")
	assert.False(t, ok, "digits only, needs a letter")
}
