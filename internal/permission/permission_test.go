package permission

import (
	"testing"

	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/stretchr/testify/assert"
)

func TestGetRoleLevel(t *testing.T) {
	tests := []struct {
		role     string
		expected int
	}{
		{"admin", RoleLevelAdmin},
		{"lecturer", RoleLevelLecturer},
		{"student", RoleLevelStudent},
		{"Admin", RoleLevelUnknown},
		{"", RoleLevelUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetRoleLevel(tt.role), "role %q", tt.role)
	}
}

func TestAuthorize(t *testing.T) {
	anonymous := &authsdk.UserContext{}
	student := &authsdk.UserContext{UserID: 1, Role: "student"}
	lecturer := &authsdk.UserContext{UserID: 2, Role: "lecturer"}
	other := &authsdk.UserContext{UserID: 3, Role: "lecturer"}
	admin := &authsdk.UserContext{UserID: 4, Role: "admin"}

	tests := []struct {
		name    string
		actor   *authsdk.UserContext
		action  Action
		owner   uint
		errCode *response.ResponseCode
	}{
		{"anonymous create", anonymous, CourseCreate, 0, code(response.Unauthorized)},
		{"student create", student, CourseCreate, 0, code(response.Forbidden)},
		{"lecturer create", lecturer, CourseCreate, 0, nil},
		{"admin create", admin, CourseCreate, 0, nil},
		{"owner update", lecturer, CourseUpdate, 2, nil},
		{"non-owner update", other, CourseUpdate, 2, code(response.Forbidden)},
		{"admin update", admin, CourseUpdate, 2, nil},
		{"owner delete", lecturer, CourseDelete, 2, nil},
		{"non-owner delete", other, CourseDelete, 2, code(response.Forbidden)},
		{"owner review", lecturer, CourseReview, 2, code(response.Forbidden)},
		{"admin review", admin, CourseReview, 2, nil},
		{"student detail", student, CourseDetail, 0, code(response.Forbidden)},
		{"lecturer detail", other, CourseDetail, 0, nil},
		{"owner keys", lecturer, CourseKeys, 2, nil},
		{"non-owner keys", other, CourseKeys, 2, code(response.Forbidden)},
		{"student feedback", student, Feedback, 0, nil},
		{"anonymous feedback", anonymous, Feedback, 0, code(response.Unauthorized)},
		{"lecturer user admin", lecturer, UserAdmin, 0, code(response.Forbidden)},
		{"admin user admin", admin, UserAdmin, 0, nil},
		{"unknown action", admin, Action("course:explode"), 0, code(response.Forbidden)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.owner)
			if tt.errCode == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, response.HasCode(err, *tt.errCode), "got %v", err)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(&authsdk.UserContext{UserID: 1, Role: "admin"}))
	assert.False(t, IsAdmin(&authsdk.UserContext{Role: "admin"}))
	assert.False(t, IsAdmin(&authsdk.UserContext{UserID: 1, Role: "lecturer"}))
}

func code(c response.ResponseCode) *response.ResponseCode {
	return &c
}
