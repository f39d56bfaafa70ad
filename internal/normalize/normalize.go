// Package normalize canonicalizes discovered link URLs and derives a
// stable identifier for them.
//
// Responsibilities:
//   - Normalize: resolve a raw href against its page's URL, strip the
//     fragment, leave scheme/host/path/query intact
//   - Identifier: derive a content-addressable hex digest of a canonical URL
package normalize

import (
	"net/url"

	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
)

// Normalize resolves raw against base (when base is non-nil) and strips
// the fragment. Scheme, host, path and query are left otherwise intact —
// this package deliberately does not lowercase the host or drop the query,
// since the acceptance policy and the frontier's URL identifiers both
// depend on the exact query string surviving normalization.
func Normalize(raw string, base *url.URL) (url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, &InvalidURLError{Raw: raw, Cause: err}
	}

	resolved := parsed
	if base != nil {
		resolved = base.ResolveReference(parsed)
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""

	return *resolved, nil
}

// Identifier derives a stable hex digest for a canonical URL using algo.
// Two URLs that normalize to the same string always yield the same
// identifier, independent of the algorithm's collision resistance.
func Identifier(canonical url.URL, algo hashutil.HashAlgo) (string, error) {
	return hashutil.HashBytes([]byte(canonical.String()), algo)
}
