package constants

import "fmt"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Only teacher or admin may access %s."
	ErrOnlyAdminsCanAccess   = "Only admin may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles     = []string{RoleStudent, RoleTeacher, RoleAdmin}
	StaffRoles   = []string{RoleTeacher, RoleAdmin}
	AdminOnly    = []string{RoleAdmin}
	TeacherAndUp = []string{RoleTeacher, RoleAdmin}
)
