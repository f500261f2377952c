// Package fetch turns model references into concrete local file paths,
// downloading remote artifacts into the models directory when needed.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"llamactl/pkg/types"
)

// Acquirer turns a model reference into a local file path. Local references
// pass through unchanged; remote references are downloaded into dir.
type Acquirer interface {
	Acquire(ref types.ModelRef, dir string) (string, error)
}

// Fetcher is the HTTP-backed Acquirer. The client's timeout bounds the whole
// download; callers must configure one so a stalled transfer cannot hang the
// workflow forever.
type Fetcher struct {
	Client *http.Client
	Log    zerolog.Logger
}

var _ Acquirer = (*Fetcher)(nil)

// New returns a Fetcher using the given client, or http.DefaultClient when nil.
func New(client *http.Client, log zerolog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client, Log: log}
}

// Acquire resolves ref. Existence of local paths is not verified here; that
// check belongs to the backend launcher which opens the file.
func (f *Fetcher) Acquire(ref types.ModelRef, dir string) (string, error) {
	switch r := ref.(type) {
	case types.LocalModel:
		return r.Path, nil
	case types.RemoteModel:
		return f.download(r.URL, dir)
	default:
		return "", fmt.Errorf("unsupported model reference %T", ref)
	}
}

// download streams the artifact at rawURL into dir. The destination filename
// is the last path segment of the response URL after redirects. The body is
// written to <name>.partial first and renamed into place only on success, so
// the final name never holds a truncated artifact; a failed transfer leaves
// the .partial file behind and names it in the returned error.
func (f *Fetcher) download(rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", invalidURLError{raw: rawURL, reason: err.Error()}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalidURLError{raw: rawURL, reason: "expected an absolute http(s) url"}
	}

	f.Log.Info().Str("url", u.String()).Msg("downloading model")
	resp, err := f.Client.Get(u.String())
	if err != nil {
		return "", downloadFailedError{url: rawURL, err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", downloadFailedError{url: rawURL, err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	// The server's post-redirect URL decides the filename, not whatever the
	// human typed.
	final := resp.Request.URL
	segs := strings.Split(final.Path, "/")
	name := segs[len(segs)-1]
	if name == "" {
		return "", noFilenameError{url: final.String()}
	}

	dest := filepath.Join(dir, name)
	partial := dest + ".partial"
	if err := writeAll(partial, resp.Body); err != nil {
		return "", downloadFailedError{url: rawURL, partial: partial, err: err}
	}
	// Rename overwrites any previously cached artifact of the same name.
	if err := os.Rename(partial, dest); err != nil {
		return "", downloadFailedError{url: rawURL, partial: partial, err: err}
	}
	f.Log.Info().Str("path", dest).Msg("model downloaded")
	return dest, nil
}

func writeAll(path string, body io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
