package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ops@equitie.com"))
	assert.False(t, IsValidEmail("ops@equitie"))
	assert.False(t, IsValidEmail("ops equitie@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestErrors_FirstMessageWins(t *testing.T) {
	e := Errors{}
	assert.True(t, e.Valid())
	e.Required("name", "  ", "Name is required")
	e.Add("name", "second")
	assert.False(t, e.Valid())
	assert.Equal(t, "Name is required", e["name"])
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf("DUE", []string{"AGREED", "DUE"}))
	assert.False(t, OneOf("due", []string{"AGREED", "DUE"}))
}

func TestBlankAsNull(t *testing.T) {
	out := BlankAsNull([]byte(`{"a":"","b":" ","c":"12","d":3}`), "a", "b", "c", "d", "missing")
	assert.JSONEq(t, `{"a":null,"b":null,"c":"12","d":3}`, string(out))

	assert.Equal(t, `[1]`, string(BlankAsNull([]byte(`[1]`), "a")))
	assert.Equal(t, `null`, string(BlankAsNull([]byte(`null`), "a")))
}
