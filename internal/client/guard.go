package client

import "github.com/yunanyuansyah/listPembelian/domain"

// GuardState is the outcome of a route guard check.
type GuardState int

const (
	// GuardChecking means the session is still being validated.
	GuardChecking GuardState = iota
	// GuardAuthorized lets the navigation proceed.
	GuardAuthorized
	// GuardRedirecting sends an unauthenticated caller to the login flow.
	GuardRedirecting
	// GuardDenied is terminal: the caller is authenticated but the role is
	// verifiably insufficient. Retrying without a new login cannot help.
	GuardDenied
)

func (s GuardState) String() string {
	switch s {
	case GuardChecking:
		return "checking"
	case GuardAuthorized:
		return "authorized"
	case GuardRedirecting:
		return "redirecting"
	case GuardDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Guard gates navigation on the session's auth state and, optionally, a
// capability. The role rules come from the same evaluator the server
// middleware uses, so client and server can never disagree.
type Guard struct {
	session    *Session
	caps       domain.CapabilityService
	capability string
}

// NewAuthGuard admits any authenticated session.
func NewAuthGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// NewCapabilityGuard admits sessions whose role carries the capability.
func NewCapabilityGuard(session *Session, caps domain.CapabilityService, capability string) *Guard {
	return &Guard{session: session, caps: caps, capability: capability}
}

// State resolves the guard against the current session.
func (g *Guard) State() GuardState {
	if g.session.Loading() {
		return GuardChecking
	}
	if !g.session.IsAuthenticated() {
		return GuardRedirecting
	}
	if g.capability == "" {
		return GuardAuthorized
	}
	if !g.caps.HasCapability(g.session.Role(), g.capability) {
		return GuardDenied
	}
	return GuardAuthorized
}
