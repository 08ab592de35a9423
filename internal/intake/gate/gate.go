// Package gate decides, per navigation, whether a view is rendered or the
// caller is redirected based on whether a session is present.
package gate

import (
	"net/http"
	"strings"
)

// View paths the gate knows about.
const (
	PathLanding   = "/"
	PathSignIn    = "/signin"
	PathSignUp    = "/signup"
	PathDashboard = "/dashboard"
)

// Decision is the outcome of Decide. A zero Target means proceed.
type Decision struct {
	Target string
}

// Proceed reports whether the request should reach its handler.
func (d Decision) Proceed() bool { return d.Target == "" }

func redirect(target string) Decision { return Decision{Target: target} }

// Decide applies the navigation policy:
//
//	/dashboard[/...]    no session  -> /signin
//	/signin, /signup    session     -> /dashboard
//	/                   either      -> /dashboard or /signin
//	anything else                   -> proceed
func Decide(path string, hasSession bool) Decision {
	switch {
	case path == PathLanding:
		if hasSession {
			return redirect(PathDashboard)
		}
		return redirect(PathSignIn)

	case isProtected(path):
		if !hasSession {
			return redirect(PathSignIn)
		}

	case isAuthView(path):
		if hasSession {
			return redirect(PathDashboard)
		}
	}
	return Decision{}
}

func isProtected(path string) bool {
	return path == PathDashboard || strings.HasPrefix(path, PathDashboard+"/")
}

func isAuthView(path string) bool {
	path = strings.TrimSuffix(path, "/")
	return path == PathSignIn || path == PathSignUp
}

// Resolver reports whether r carries a valid session. It runs before any
// handler, once per request.
type Resolver func(r *http.Request) bool

// Middleware enforces Decide on every request, answering redirects with
// 303 See Other.
func Middleware(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(r.URL.Path, resolve(r))
			if !d.Proceed() {
				http.Redirect(w, r, d.Target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
