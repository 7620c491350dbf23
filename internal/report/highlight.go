package report

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight colours a rendered report for terminal preview. Formats
// without a lexer are returned unchanged.
func Highlight(f Format, data []byte) string {
	var lexer chroma.Lexer
	switch f {
	case FormatHTML:
		lexer = lexers.Get("html")
	case FormatJSON, FormatCycloneDX:
		lexer = lexers.Get("json")
	}
	if lexer == nil {
		return string(data)
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return string(data)
	}

	iterator, err := lexer.Tokenise(nil, string(data))
	if err != nil {
		return string(data)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return string(data)
	}
	return buf.String()
}
