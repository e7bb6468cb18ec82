// Package identity provides URL normalization, slug generation, and the
// stable content hashing that gives every extracted item its identity.
package identity

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveURL resolves ref against base and returns an absolute URL.
// Non-document schemes (data:, javascript:, mailto:, tel:) are rejected.
func ResolveURL(base, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty href")
	}

	lower := strings.ToLower(ref)
	for _, scheme := range []string{"data:", "javascript:", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return "", fmt.Errorf("unsupported scheme in %q", ref)
		}
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", ref, err)
	}

	resolved := baseURL.ResolveReference(refURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}
	if resolved.Host == "" {
		return "", fmt.Errorf("no host in resolved URL %q", ref)
	}

	return resolved.String(), nil
}

// NormalizeURL strips the fragment and defaults an empty path to "/".
// Invalid URLs are returned unchanged; callers validate separately.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// PageSlug derives a stable slug from the path of a page URL. The root
// path yields "home".
func PageSlug(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || strings.Trim(u.Path, "/") == "" {
		return "home"
	}
	slug := Slugify(strings.Trim(u.Path, "/"))
	if slug == "" {
		return "home"
	}
	return slug
}

// ImageID derives the stable 16-hex-char identity of an image from its
// resolved source URL.
func ImageID(src string) string {
	sum := sha1.Sum([]byte(src))
	return fmt.Sprintf("%x", sum)[:16]
}

// ContentHash computes the full SHA-256 hash of data as a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// URLFilename returns the final path element of a URL, without query or
// fragment. Used by the URL-pattern placement signal.
func URLFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return path.Base(u.Path)
}

// FormatFromURL guesses the image format from the URL's file extension,
// ignoring query strings. Returns "" when there is no extension.
func FormatFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	return ext
}
