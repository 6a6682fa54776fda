package highlight

import (
	"bytes"
	"encoding/json"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/log"
)

const (
	styleName     = "dracula"
	formatterName = "terminal256"
)

// Schema pretty prints and colours a schema body.
// Bodies that are not JSON are returned unchanged apart from colouring.
func Schema(schema string) string {
	return Json(Indent(schema))
}

// Indent pretty prints valid JSON, anything else is returned as is.
func Indent(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}

func Json(text string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}
	style := styles.Get(styleName)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		log.Debug("Unable to tokenise schema", "err", err)
		return text
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		log.Debug("Unable to highlight schema", "err", err)
		return text
	}
	return buf.String()
}
