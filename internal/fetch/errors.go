package fetch

import "fmt"

type invalidURLError struct {
	raw    string
	reason string
}

func (e invalidURLError) Error() string {
	return fmt.Sprintf("invalid model url %q: %s", e.raw, e.reason)
}

// IsInvalidURL reports whether err means the model url could not be parsed.
func IsInvalidURL(err error) bool {
	_, ok := err.(invalidURLError)
	return ok
}

type noFilenameError struct{ url string }

func (e noFilenameError) Error() string {
	return "no filename found in the url to download: " + e.url
}

// IsNoFilenameInURL reports whether err means the response URL carried no
// usable final path segment.
func IsNoFilenameInURL(err error) bool {
	_, ok := err.(noFilenameError)
	return ok
}

type downloadFailedError struct {
	url     string
	partial string // leftover .partial path, empty if nothing was written
	err     error
}

func (e downloadFailedError) Error() string {
	if e.partial != "" {
		return fmt.Sprintf("download failed: %s: %v (partial file left at %s)", e.url, e.err, e.partial)
	}
	return fmt.Sprintf("download failed: %s: %v", e.url, e.err)
}

func (e downloadFailedError) Unwrap() error { return e.err }

// IsDownloadFailed reports whether err is a terminal transfer failure. There
// is no retry policy; one failed attempt ends the acquire call.
func IsDownloadFailed(err error) bool {
	_, ok := err.(downloadFailedError)
	return ok
}

// PartialPath returns the leftover partial file of a failed download, or ""
// when nothing was written to disk.
func PartialPath(err error) string {
	if d, ok := err.(downloadFailedError); ok {
		return d.partial
	}
	return ""
}
