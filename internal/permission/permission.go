// Package permission is the single authorization step every mutating
// operation passes through before it touches the store.
package permission

import (
	"fmt"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"
)

// Role levels, higher is more privileged
const (
	RoleLevelAdmin    = 80
	RoleLevelLecturer = 50
	RoleLevelStudent  = 10
	RoleLevelUnknown  = 0
)

var RoleLevelMap = map[string]int{
	user.RoleAdmin:    RoleLevelAdmin,
	user.RoleLecturer: RoleLevelLecturer,
	user.RoleStudent:  RoleLevelStudent,
}

type Action string

const (
	CourseCreate Action = "course:create"
	CourseUpdate Action = "course:update"
	CourseDelete Action = "course:delete"
	CourseReview Action = "course:review"
	CourseDetail Action = "course:detail"
	CourseKeys   Action = "course:keys"
	UserAdmin    Action = "user:admin"
	Feedback     Action = "course:feedback"
	MediaUpload  Action = "media:upload"
)

// rule grants an action to a minimum role level, to the resource owner, or both
type rule struct {
	minLevel int
	owner    bool
}

var rules = map[Action]rule{
	CourseCreate: {minLevel: RoleLevelLecturer},
	CourseUpdate: {minLevel: RoleLevelAdmin, owner: true},
	CourseDelete: {minLevel: RoleLevelAdmin, owner: true},
	CourseReview: {minLevel: RoleLevelAdmin},
	CourseDetail: {minLevel: RoleLevelLecturer},
	CourseKeys:   {minLevel: RoleLevelAdmin, owner: true},
	UserAdmin:    {minLevel: RoleLevelAdmin},
	Feedback:     {minLevel: RoleLevelStudent},
	MediaUpload:  {minLevel: RoleLevelStudent},
}

// GetRoleLevel returns RoleLevelUnknown for roles outside the map
func GetRoleLevel(role string) int {
	if level, ok := RoleLevelMap[role]; ok {
		return level
	}
	return RoleLevelUnknown
}

// IsAdmin reports whether actor is an authenticated administrator
func IsAdmin(actor *authsdk.UserContext) bool {
	return actor.Authenticated() && actor.Role == user.RoleAdmin
}

// Authorize checks that actor may perform action on a resource owned by
// ownerID. Pass 0 as ownerID for actions without an owned resource.
// Anonymous callers get Unauthorized, everyone else Forbidden.
func Authorize(actor *authsdk.UserContext, action Action, ownerID uint) error {
	if !actor.Authenticated() {
		return response.ErrUnauthorized()
	}

	r, ok := rules[action]
	if !ok {
		return response.ErrForbidden(fmt.Sprintf("unknown action %s", action))
	}

	if r.owner && ownerID != 0 && actor.UserID == ownerID {
		return nil
	}
	if GetRoleLevel(actor.Role) >= r.minLevel {
		return nil
	}

	return response.ErrForbidden(fmt.Sprintf("role %q may not perform %s", actor.Role, action))
}
