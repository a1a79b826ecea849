// Package permission holds the single table mapping each protected operation
// to the roles allowed to perform it. HTTP middleware and services both consult it.
package permission

import (
	"campus_voice_backend/internal/model"
)

type Operation string

const (
	ViewProfile        Operation = "profile:view"
	SubmitFeedback     Operation = "feedback:submit"
	ListOwnFeedback    Operation = "feedback:list_own"
	ListAllFeedback    Operation = "feedback:list_all"
	ViewFeedback       Operation = "feedback:view"
	ViewAnyFeedback    Operation = "feedback:view_any"
	TransitionFeedback Operation = "feedback:transition"
	CommentFeedback    Operation = "feedback:comment"
	VoteFeedback       Operation = "feedback:vote"
	ViewStats          Operation = "dashboard:stats"
	ManageInbox        Operation = "notifications:manage"
)

var authenticated = []model.UserRole{model.Student, model.Admin}

var table = map[Operation][]model.UserRole{
	ViewProfile:        authenticated,
	SubmitFeedback:     authenticated,
	ListOwnFeedback:    authenticated,
	ViewFeedback:       authenticated,
	CommentFeedback:    authenticated,
	VoteFeedback:       authenticated,
	ViewStats:          authenticated,
	ManageInbox:        authenticated,
	ListAllFeedback:    {model.Admin},
	ViewAnyFeedback:    {model.Admin},
	TransitionFeedback: {model.Admin},
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role model.UserRole, op Operation) bool {
	for _, r := range table[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the roles allowed to perform op.
func Roles(op Operation) []model.UserRole {
	roles := table[op]
	out := make([]model.UserRole, len(roles))
	copy(out, roles)
	return out
}

// Table returns a snapshot of the whole authorization table.
func Table() map[Operation][]model.UserRole {
	out := make(map[Operation][]model.UserRole, len(table))
	for op := range table {
		out[op] = Roles(op)
	}
	return out
}
