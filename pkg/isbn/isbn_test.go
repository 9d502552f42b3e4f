package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "9780316769488", Normalize("978-0-316-76948-8"))
	assert.Equal(t, "9780316769488", Normalize("ISBN: 978 0316 769488"))
	assert.Equal(t, "080442957X", Normalize("0-8044-2957-x"))
	assert.Equal(t, "", Normalize("no digits here"))
}

func TestValidateISBN10(t *testing.T) {
	assert.True(t, ValidateISBN10("0306406152"))
	assert.True(t, ValidateISBN10("080442957X"))

	assert.False(t, ValidateISBN10("0306406153"))  // bad checksum
	assert.False(t, ValidateISBN10("030640615"))   // too short
	assert.False(t, ValidateISBN10("03064X6152"))  // X not in last position
	assert.False(t, ValidateISBN10("03064o6152"))  // non-digit
}

func TestValidateISBN13(t *testing.T) {
	assert.True(t, ValidateISBN13("9780306406157"))
	assert.True(t, ValidateISBN13("9780316769488"))

	assert.False(t, ValidateISBN13("9780306406158")) // bad checksum
	assert.False(t, ValidateISBN13("978030640615"))  // too short
	assert.False(t, ValidateISBN13("978030640615X")) // X not valid in ISBN-13
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("978-0-306-40615-7"))
	assert.True(t, IsValid("0-306-40615-2"))
	assert.False(t, IsValid("1234567890"))
	assert.False(t, IsValid(""))
}
