package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions  = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags   = html.CommonFlags
	plainPolicy = bluemonday.NewPolicy()
)

func init() {
	// Everything else is unwrapped to its text content.
	plainPolicy.AllowElements("p", "br", "ul", "ol", "li")
}

// MarkdownToPlain flattens model output that may carry markdown emphasis,
// headings or stray HTML into plain text.
func MarkdownToPlain(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse([]byte(md)), renderer)

	sanitized := plainPolicy.Sanitize(string(unsafeHTML))

	text, err := html2text.FromString(sanitized, html2text.Options{OmitLinks: true})
	if err != nil {
		// html2text only fails on unparsable input; keep the input then.
		return strings.TrimSpace(md)
	}
	return strings.TrimSpace(text)
}
