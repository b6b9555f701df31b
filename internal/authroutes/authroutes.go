package authroutes

// Fallback is returned when none of the candidate routes are known.
const Fallback = "/"

// SignupCandidates are the paths probed, in order, when resolving where the
// signup flow lives.
var SignupCandidates = []string{"/signup", "/sign-up", "/register", "/auth/signup"}

// LoginCandidates are the paths probed, in order, for the login flow.
var LoginCandidates = []string{"/login", "/log-in", "/signin", "/auth/login"}

// Resolve returns the first candidate present in the known-routes set, or
// Fallback when none of them are.
func Resolve(candidates []string, known map[string]bool) string {
	for _, c := range candidates {
		if known[c] {
			return c
		}
	}
	return Fallback
}
