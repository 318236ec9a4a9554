package report

import (
	"fmt"
	"net/url"
	"strings"
)

// CheckImageURL accepts the values an image field may hold: empty, an
// absolute http(s) URL, or a data:image/ URL. Anything else, including
// javascript: and relative references, is ErrInvalidValue, as is any
// value holding quotes, whitespace or angle brackets.
func CheckImageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.ContainsAny(raw, " \t\r\n\"'<>`\\") {
		return fmt.Errorf("%w: URL contains quotes, spaces or angle brackets", ErrInvalidValue)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: URL %q has no host", ErrInvalidValue, raw)
		}
		return nil
	case "data":
		if strings.HasPrefix(strings.ToLower(u.Opaque), "image/") {
			return nil
		}
		return fmt.Errorf("%w: data URL is not an image", ErrInvalidValue)
	default:
		return fmt.Errorf("%w: unsupported URL scheme %q", ErrInvalidValue, u.Scheme)
	}
}
