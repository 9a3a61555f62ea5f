// Package views holds the HTML components rendered by vizboard.
package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// Dashboard renders the gallery page: the title, then each image followed by
// its file name and insight.
func Dashboard(p Page) templ.Component {
	return page(p.Title, func(buf *bytes.Buffer) {
		buf.WriteString("<h1>")
		buf.WriteString(esc(p.Title))
		buf.WriteString("</h1>")
		if len(p.Blocks) == 0 {
			buf.WriteString(`<p class="empty">No images found.</p>`)
			return
		}
		for _, b := range p.Blocks {
			buf.WriteString(`<figure class="block">`)
			buf.WriteString(`<img src="`)
			buf.WriteString(esc(b.Src))
			buf.WriteString(`" alt="`)
			buf.WriteString(esc(b.Filename))
			buf.WriteString(`"`)
			if b.Width > 0 && b.Height > 0 {
				buf.WriteString(` width="` + itoa(b.Width) + `" height="` + itoa(b.Height) + `"`)
			}
			buf.WriteString(` loading="lazy"/>`)
			buf.WriteString("<figcaption>")
			buf.WriteString(esc(b.Filename))
			if b.Size != "" {
				buf.WriteString(" &middot; ")
				buf.WriteString(esc(b.Size))
			}
			buf.WriteString("</figcaption>")
			buf.WriteString(`<p class="insight">`)
			buf.WriteString(esc(b.Caption))
			buf.WriteString("</p></figure>")
		}
	})
}

// AdminLogin renders the password form for the history page.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return page("Sign in", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Sign in</h1>")
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" autofocus/> <button type="submit">Sign in</button></form>`)
	})
}

// History renders the recent render passes.
func History(rows []PassRow, csrfToken string) templ.Component {
	return page("Render history", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Render history</h1>")
		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<button type="submit">Sign out</button></form>`)
		if len(rows) == 0 {
			buf.WriteString(`<p class="empty">No passes recorded yet.</p>`)
			return
		}
		buf.WriteString("<table><thead><tr><th>Started</th><th>Directory</th><th>Images</th><th>Duration</th><th>Error</th></tr></thead><tbody>")
		for _, r := range rows {
			buf.WriteString(`<tr><td title="`)
			buf.WriteString(esc(r.StartedAt))
			buf.WriteString(`">`)
			buf.WriteString(esc(r.Ago))
			buf.WriteString("</td><td>")
			buf.WriteString(esc(r.Dir))
			buf.WriteString("</td><td>")
			buf.WriteString(itoa(r.Blocks))
			buf.WriteString("</td><td>")
			buf.WriteString(esc(r.Duration))
			buf.WriteString(`</td><td class="error">`)
			buf.WriteString(esc(r.Error))
			buf.WriteString("</td></tr>")
		}
		buf.WriteString("</tbody></table>")
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return page("Not found", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Not found</h1><p><a href=\"/\">Back to the dashboard</a></p>")
	})
}

// ServerError renders the 500 page. msg is shown when non-empty.
func ServerError(msg string) templ.Component {
	return page("Error", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Something went wrong</h1>")
		if msg != "" {
			buf.WriteString(`<p class="error">`)
			buf.WriteString(esc(msg))
			buf.WriteString("</p>")
		}
	})
}
