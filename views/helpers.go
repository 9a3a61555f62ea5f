package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const stylesheet = `body{margin:0;font-family:system-ui,sans-serif;background:#fafaf9;color:#1c1917}
main{max-width:960px;margin:0 auto;padding:2rem 1rem}
h1{font-size:2rem;margin:0 0 1.5rem}
figure{margin:0 0 2.5rem}
figure img{display:block;width:100%;height:auto;border:1px solid #e7e5e4}
figcaption{font-size:.9rem;color:#57534e;margin-top:.4rem}
.insight{font-size:.85rem;color:#78716c;margin-top:.25rem}
.empty{color:#78716c}
table{border-collapse:collapse;width:100%;font-size:.9rem}
th,td{border-bottom:1px solid #e7e5e4;padding:.4rem;text-align:left}
.error{color:#b91c1c}`

// page wraps body in the shared document layout.
func page(title string, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		buf.WriteString("<title>")
		buf.WriteString(esc(title))
		buf.WriteString("</title><style>")
		buf.WriteString(stylesheet)
		buf.WriteString("</style></head><body><main>")
		body(&buf)
		buf.WriteString("</main></body></html>\n")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// csrfField renders the hidden form input read by the CSRF middleware.
func csrfField(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="`)
	buf.WriteString(esc(token))
	buf.WriteString(`"/>`)
}
