package domain

import "strings"

// Role identifies the author of a conversation turn. The set is closed: any
// tag that is not "user" resolves to RoleAssistant at the boundary, so
// free-form role strings never reach prompt assembly.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NormalizeRole coerces an arbitrary role tag to the closed two-variant set.
func NormalizeRole(tag string) Role {
	if strings.EqualFold(strings.TrimSpace(tag), string(RoleUser)) {
		return RoleUser
	}
	return RoleAssistant
}

// Turn is one entry in a conversation. Sessions are client-held, ordered,
// append-only sequences of turns; the core consumes the caller-supplied order
// and preserves it through windowing.
type Turn struct {
	Role    Role
	Content string
}

// Empty reports whether the turn carries no usable content.
// Whitespace-only turns are dropped during history windowing.
func (t Turn) Empty() bool {
	return strings.TrimSpace(t.Content) == ""
}
