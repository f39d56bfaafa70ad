// Package policy implements the acceptance predicate that decides whether
// a discovered URL is worth fetching and enqueuing.
//
// Responsibilities:
//   - Accept: total, non-panicking predicate over scheme, host whitelist,
//     forbidden query substrings, trap path patterns, duplicate path
//     segments and a file-extension blacklist
package policy

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var allowedHosts = map[string]struct{}{
	"ics.uci.edu":         {},
	"cs.uci.edu":          {},
	"informatics.uci.edu": {},
	"stat.uci.edu":        {},
}

const todayHost = "today.uci.edu"
const todayAllowedPrefix = "/department/information_computer_sciences/"

var forbiddenQuerySubstrings = []string{
	"share=",
	"action=login",
	"pwd=",
	"format=",
	"action=download",
	"upname=",
	"ical=",
	"action=edit",
	"replytocom=",
	"print=",
	"session=",
	"redirect_to=",
	"post_type=",
	"tribe-bar-date=",
	"eventDisplay=past",
	"do=media",
	"tab_files=",
	"image=",
	"do=diff",
	"difftype=",
}

var trapPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/day/(19|20)\d{2}-\d{2}-\d{2}`),
	regexp.MustCompile(`/events?/\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`/events/category/.*/(19|20)\d{2}-\d{2}`),
}

var blacklistedExtensions = map[string]struct{}{
	"css": {}, "js": {}, "bmp": {}, "gif": {}, "jpeg": {}, "jpg": {}, "ico": {},
	"png": {}, "tiff": {}, "tif": {}, "mid": {}, "mp2": {}, "mp3": {}, "mp4": {},
	"wav": {}, "avi": {}, "mov": {}, "mpeg": {}, "ram": {}, "m4v": {}, "mkv": {},
	"ogg": {}, "ogv": {}, "pdf": {}, "ps": {}, "eps": {}, "tex": {}, "ppt": {},
	"pptx": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "names": {},
	"data": {}, "dat": {}, "exe": {}, "bz2": {}, "tar": {}, "msi": {}, "bin": {},
	"7z": {}, "psd": {}, "dmg": {}, "iso": {}, "epub": {}, "dll": {}, "cnf": {},
	"tgz": {}, "sha1": {}, "thmx": {}, "mso": {}, "arff": {}, "rtf": {}, "jar": {},
	"csv": {}, "rm": {}, "smil": {}, "wmv": {}, "swf": {}, "wma": {}, "zip": {},
	"rar": {}, "gz": {},
}

// Accept reports whether u should be fetched and traversed, along with a
// reason string explaining a rejection. Accept never panics: malformed
// input (a nil host, an empty scheme) simply fails the relevant check, and
// a panic inside any check is recovered and reported as a rejection.
func Accept(u url.URL) (accepted bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			accepted, reason = false, fmt.Sprintf("policy check failed: %v", r)
		}
	}()

	if u.Scheme != "http" && u.Scheme != "https" {
		return false, "scheme not http/https"
	}

	if !hostAllowed(u) {
		return false, "host not in whitelist"
	}

	for _, sub := range forbiddenQuerySubstrings {
		if strings.Contains(u.RawQuery, sub) {
			return false, "forbidden query substring: " + sub
		}
	}

	if hasTrap(u) {
		return false, "trap pattern matched"
	}

	if hasDuplicateSegment(u.Path) {
		return false, "duplicate path segment"
	}

	if hasBlacklistedExtension(u.Path) {
		return false, "blacklisted file extension"
	}

	return true, ""
}

func hostAllowed(u url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == todayHost {
		return strings.HasPrefix(u.Path, todayAllowedPrefix)
	}
	for allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func hasTrap(u url.URL) bool {
	path := u.Path
	for _, re := range trapPatterns {
		if re.MatchString(path) {
			return true
		}
	}
	if strings.Contains(path, "doku.php") {
		return true
	}
	if strings.Contains(path, "/-/commit/") || strings.Contains(path, "/-/tree/") {
		return true
	}
	if strings.Contains(path, "README.md") {
		for _, kind := range []string{"/-/blob/", "/-/blame/", "/-/raw/", "/-/commits/", "/-/tree/"} {
			if strings.Contains(path, kind) {
				return true
			}
		}
	}
	if strings.Contains(path, "/epstein/pix/") {
		return true
	}
	return false
}

func hasDuplicateSegment(path string) bool {
	segments := strings.Split(path, "/")
	seen := make(map[string]struct{}, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if _, ok := seen[seg]; ok {
			return true
		}
		seen[seg] = struct{}{}
	}
	return false
}

func hasBlacklistedExtension(path string) bool {
	lower := strings.ToLower(path)
	idx := strings.LastIndex(lower, ".")
	if idx == -1 {
		return false
	}
	ext := lower[idx+1:]
	if slash := strings.Index(ext, "/"); slash != -1 {
		return false
	}
	_, ok := blacklistedExtensions[ext]
	return ok
}
