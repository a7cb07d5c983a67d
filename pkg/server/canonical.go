package server

import (
	"net/http"
	"strings"

	"github.com/courseforge/markup/internal/errors"
)

// canonicalPath normalizes a request path:
//   - Collapse multiple slashes (/blog//post → /blog/post)
//   - Remove "." segments (/blog/./post → /blog/post)
//   - Resolve ".." segments (/blog/../about → /about)
//
// A trailing slash is kept because it selects a directory's index page.
// Paths containing a backslash or NUL byte, and paths whose ".." segments
// climb above the root, are rejected.
func canonicalPath(p string) (string, error) {
	if strings.ContainsAny(p, "\\\x00") {
		return "", errors.New(errors.CodeInvalidPage).WithDetailf("%q", p)
	}

	var segments []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return "", errors.New(errors.CodeInvalidPage).WithDetailf("%q escapes the root", p)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	out := "/" + strings.Join(segments, "/")
	if out != "/" && strings.HasSuffix(p, "/") {
		out += "/"
	}
	return out, nil
}

// canonicalize redirects requests for non-canonical paths and rejects
// unsafe ones.
func (s *Server) canonicalize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := canonicalPath(r.URL.Path)
		if err != nil {
			s.writeError(w, r, r.URL.Path, err, strings.HasSuffix(r.URL.Path, jsonSuffix))
			return
		}
		if p != r.URL.Path {
			u := *r.URL
			u.Path = p
			u.RawPath = ""
			http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
