package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		assert.Equal(t, "{\n  \"type\": \"string\"\n}", Indent(`{"type":"string"}`))
	})

	t.Run("invalid json stays untouched", func(t *testing.T) {
		assert.Equal(t, "message Foo {}", Indent("message Foo {}"))
	})
}

func TestSchema(t *testing.T) {
	render := Schema(`{"type":"record","name":"Order"}`)

	assert.Equal(t, "{\n  \"type\": \"record\",\n  \"name\": \"Order\"\n}", strings.TrimSpace(ansi.Strip(render)))
}
