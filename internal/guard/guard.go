// Package guard gates navigation before a page renders. It reads only the
// persisted access token, never the in-memory session, so it can run before
// any client state exists. Across a full navigation the two sources can
// transiently disagree; that cold-start window closes on the next
// authenticated call.
package guard

import (
	"strings"

	"shopfront/internal/credential"
)

// Routes that require a persisted access token
var protectedPrefixes = []string{"/products", "/dashboard", "/profile"}

// Entry routes that authenticated visitors are bounced away from
var entryRoutes = []string{"/", "/register"}

// Decision is the outcome of a guard check
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard evaluates route access from persisted credentials
type Guard struct {
	creds credential.Store
}

// New creates a Guard backed by creds
func New(creds credential.Store) *Guard {
	return &Guard{creds: creds}
}

// Check decides whether path may render. It is a routing hint only; the
// backend authorizes every protected call regardless.
func (g *Guard) Check(path string) Decision {
	_, hasToken := g.creds.AccessToken()

	if isProtected(path) && !hasToken {
		return Decision{RedirectTo: "/"}
	}

	if isEntry(path) && hasToken {
		return Decision{RedirectTo: "/products"}
	}

	return Decision{Allow: true}
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isEntry(path string) bool {
	for _, route := range entryRoutes {
		if path == route || (route != "/" && strings.HasPrefix(path, route)) {
			return true
		}
	}
	return false
}
