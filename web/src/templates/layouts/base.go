package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/issuedesk/internal/view"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// notifyScript turns the "notify" events raised by HX-Trigger into toasts.
var notifyScript templ.Component = templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<script>
document.body.addEventListener("notify", function (evt) {
  var notes = Array.isArray(evt.detail.value) ? evt.detail.value : [evt.detail];
  var box = document.getElementById("toasts");
  notes.forEach(function (n) {
    var el = document.createElement("div");
    el.className = "toast toast-" + n.level;
    el.textContent = n.message;
    box.appendChild(el);
    setTimeout(function () { el.remove(); }, 4000);
  });
});
</script>`)
	return err
})

// Base wraps page content in the HTML document, including any flash messages.
func Base(title string, flashes view.FlashData, content g.Node) templ.Component {
	doc := c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Script(h.Src(htmxSrc)),
			h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
		},
		Body: []g.Node{
			flashList(flashes),
			h.Div(h.ID("toasts"), h.Class("fixed top-4 right-4 space-y-2")),
			h.Main(content),
			view.AdaptTemplToGomponent(notifyScript),
		},
	})
	return view.AdaptGomponentToTempl(doc)
}

func flashList(flashes view.FlashData) g.Node {
	if len(flashes.Success) == 0 && len(flashes.Error) == 0 {
		return nil
	}
	return h.Div(
		h.ID("flash-messages"),
		g.Map(flashes.Success, func(msg string) g.Node {
			return h.Div(h.Class("alert alert-success"), g.Text(msg))
		}),
		g.Map(flashes.Error, func(msg string) g.Node {
			return h.Div(h.Class("alert alert-error"), g.Text(msg))
		}),
	)
}
