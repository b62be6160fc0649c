package domain

// AuthResult is the outcome of the authentication guard: either
// Authenticated(identity) or Unauthenticated.
type AuthResult struct {
	identity Identity
}

// Authenticated wraps a resolved identity.
func Authenticated(id Identity) AuthResult {
	return AuthResult{identity: id}
}

// Unauthenticated is the result when no identity could be resolved.
func Unauthenticated() AuthResult {
	return AuthResult{}
}

// Identity returns the identity and true when the result is Authenticated.
func (r AuthResult) Identity() (Identity, bool) {
	return r.identity, r.identity != nil
}
