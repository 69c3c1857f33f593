package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	gohtml "html"

	"github.com/matzehuels/netgraph/pkg/render/svg"
	"github.com/matzehuels/netgraph/pkg/view"
)

// DefaultTitle is the page title when none is set.
const DefaultTitle = "netgraph"

const pageCSS = `
    body { margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #fff; }
    #stage { display: inline-block; user-select: none; }
    #stage svg { display: block; cursor: grab; }
    #stage svg:active { cursor: grabbing; }
    .status { margin-top: 8px; font-size: 12px; color: #666; }`

// liveJS drives a server-side view. Pointer events are queued so they reach
// the server in the order they happened.
const liveJS = `
    (function () {
      const stage = document.getElementById('stage');
      const status = document.getElementById('status');
      const prefix = %s;
      let base = null, queue = Promise.resolve(), lastMove = 0;

      function post(body) {
        if (!base) return;
        queue = queue.then(() => fetch(base + '/pointer', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify(body),
        })).catch(() => {});
      }
      function point(type, e, extra) {
        const svg = stage.querySelector('svg');
        if (!svg) return;
        const r = svg.getBoundingClientRect();
        post(Object.assign({ type: type, x: e.clientX - r.left, y: e.clientY - r.top }, extra || {}));
      }

      stage.addEventListener('mousedown', e => { e.preventDefault(); point('down', e); });
      stage.addEventListener('mousemove', e => {
        const now = performance.now();
        if (now - lastMove < 16) return;
        lastMove = now;
        point('move', e);
      });
      window.addEventListener('mouseup', e => point('up', e));
      stage.addEventListener('mouseleave', e => point('leave', e));
      stage.addEventListener('wheel', e => { e.preventDefault(); point('wheel', e, { deltaY: e.deltaY }); }, { passive: false });

      fetch(prefix + '/views', { method: 'POST' })
        .then(r => r.json())
        .then(v => {
          base = prefix + '/views/' + v.id;
          const events = new EventSource(base + '/events');
          events.onmessage = e => { stage.innerHTML = e.data; };
          events.addEventListener('state', e => { status.textContent = e.data; });
          events.onerror = () => { status.textContent = 'disconnected'; };
          window.addEventListener('pagehide', () => fetch(base, { method: 'DELETE', keepalive: true }));
        })
        .catch(err => { status.textContent = 'failed to open view: ' + err; });
    })();`

// Option configures page rendering.
type Option func(*page)

type page struct {
	title  string
	prefix string
}

// WithTitle sets the document title.
func WithTitle(title string) Option { return func(p *page) { p.title = title } }

// WithPrefix sets the URL prefix the live page uses to reach the server.
func WithPrefix(prefix string) Option { return func(p *page) { p.prefix = prefix } }

func newPage(opts []Option) page {
	p := page{title: DefaultTitle}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Render returns a standalone page showing one frame of the scene.
func Render(s view.Scene, opts ...Option) []byte {
	p := newPage(opts)
	var buf bytes.Buffer
	writeHead(&buf, p)
	buf.WriteString(`  <div id="stage">` + "\n")
	buf.Write(svg.Render(s))
	buf.WriteString("  </div>\n")
	if s.LoadError != "" {
		fmt.Fprintf(&buf, `  <div class="status">%s</div>`+"\n", gohtml.EscapeString(s.LoadError))
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

// Live returns the page served by the live view server. It opens a view,
// streams its frames and posts pointer events back.
func Live(opts ...Option) []byte {
	p := newPage(opts)
	prefix, _ := json.Marshal(p.prefix)

	var buf bytes.Buffer
	writeHead(&buf, p)
	buf.WriteString(`  <div id="stage"></div>` + "\n")
	buf.WriteString(`  <div id="status" class="status">loading</div>` + "\n")
	fmt.Fprintf(&buf, "  <script>%s\n  </script>\n", fmt.Sprintf(liveJS, prefix))
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func writeHead(buf *bytes.Buffer, p page) {
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`  <meta charset="utf-8">` + "\n")
	fmt.Fprintf(buf, "  <title>%s</title>\n", gohtml.EscapeString(p.title))
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", pageCSS)
	buf.WriteString("</head>\n<body>\n")
}
