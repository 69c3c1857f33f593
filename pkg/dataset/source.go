package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// Fetcher retrieves one tabular resource by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (*Table, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uri string) (*Table, error)

// Fetch calls f(ctx, uri).
func (f FetcherFunc) Fetch(ctx context.Context, uri string) (*Table, error) { return f(ctx, uri) }

// maxResourceSize bounds a single fetched resource.
const maxResourceSize = 32 << 20

// Router dispatches a URI to the fetcher registered for its scheme.
// URIs without a scheme are local file paths.
type Router struct {
	schemes map[string]Fetcher
}

// NewRouter returns a Router that understands file, http(s), redis and
// mongodb URIs.
func NewRouter() *Router {
	httpSource := &HTTPSource{Client: &http.Client{Timeout: 30 * time.Second}}
	r := &Router{schemes: map[string]Fetcher{}}
	r.Register("", FileSource{})
	r.Register("file", FileSource{})
	r.Register("http", httpSource)
	r.Register("https", httpSource)
	r.Register("redis", RedisSource{})
	r.Register("rediss", RedisSource{})
	r.Register("mongodb", MongoSource{})
	r.Register("mongodb+srv", MongoSource{})
	return r
}

// Register installs f for scheme, replacing any previous fetcher.
func (r *Router) Register(scheme string, f Fetcher) {
	r.schemes[strings.ToLower(scheme)] = f
}

// Fetch implements Fetcher.
func (r *Router) Fetch(ctx context.Context, uri string) (*Table, error) {
	scheme := schemeOf(uri)
	f, ok := r.schemes[scheme]
	if !ok {
		return nil, neterrors.New(neterrors.ErrCodeInvalidSource, "unsupported source scheme %q", scheme)
	}
	return f.Fetch(ctx, uri)
}

// schemeOf returns the lowercase URI scheme, or "" for plain paths
// (including Windows drive letters).
func schemeOf(uri string) string {
	i := strings.Index(uri, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(uri[:i])
}

// FileSource reads CSV files from the local filesystem.
type FileSource struct{}

// Fetch implements Fetcher.
func (FileSource) Fetch(ctx context.Context, uri string) (*Table, error) {
	path := uri
	if schemeOf(uri) == "file" {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, neterrors.Wrap(neterrors.ErrCodeInvalidSource, err, "parse %s", uri)
		}
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(io.LimitReader(f, maxResourceSize))
}

// HTTPSource downloads CSV over HTTP. Failed requests are not retried.
type HTTPSource struct {
	Client *http.Client
}

// Fetch implements Fetcher.
func (s *HTTPSource) Fetch(ctx context.Context, uri string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, neterrors.Wrap(neterrors.ErrCodeInvalidSource, err, "build request for %s", uri)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", uri, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return ReadCSV(bytes.NewReader(body))
}

// splitFragment separates the "#name" suffix that selects a key or
// collection from the connection URI.
func splitFragment(uri string) (conn, name string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", neterrors.Wrap(neterrors.ErrCodeInvalidSource, err, "parse %s", uri)
	}
	name = u.Fragment
	if name == "" {
		return "", "", neterrors.New(neterrors.ErrCodeInvalidSource, "%s: missing #name selector", u.Redacted())
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), name, nil
}
