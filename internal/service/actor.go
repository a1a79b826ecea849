package service

import (
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/permission"
	"campus_voice_backend/internal/util"
	"fmt"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   model.UserRole
	Meta   model.RequestMeta
}

func (a Actor) Can(op permission.Operation) bool {
	return permission.Allowed(a.Role, op)
}

func (a Actor) authorize(op permission.Operation) error {
	if !a.Can(op) {
		return fmt.Errorf("%w: %s", util.ErrPermissionDenied, op)
	}
	return nil
}

// canSee reports whether the actor may read the given feedback.
func (a Actor) canSee(f *model.Feedback) bool {
	return f.UserID == a.UserID || a.Can(permission.ViewAnyFeedback)
}
