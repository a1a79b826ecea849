package permission

import (
	"testing"

	"campus_voice_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role model.UserRole
		op   Operation
		want bool
	}{
		{model.Student, SubmitFeedback, true},
		{model.Student, ListOwnFeedback, true},
		{model.Student, ListAllFeedback, false},
		{model.Student, TransitionFeedback, false},
		{model.Student, ViewAnyFeedback, false},
		{model.Admin, TransitionFeedback, true},
		{model.Admin, ListAllFeedback, true},
		{model.Admin, SubmitFeedback, true},
		{model.UserRole("GUEST"), SubmitFeedback, false},
		{model.Admin, Operation("unknown"), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.op), "%s %s", tc.role, tc.op)
	}
}

func TestTableIsACopy(t *testing.T) {
	snapshot := Table()
	snapshot[TransitionFeedback] = append(snapshot[TransitionFeedback], model.Student)

	assert.False(t, Allowed(model.Student, TransitionFeedback))
	assert.Equal(t, []model.UserRole{model.Admin}, Roles(TransitionFeedback))
}
