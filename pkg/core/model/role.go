package model

import "fmt"

// Role is a duty slot that can be filled on a service.
type Role string

const (
	RoleWorshipLeader       Role = "WORSHIP LEADER"
	RoleEmcee               Role = "EMCEE"
	RoleAcoustic            Role = "ACOUSTIC GUITAR"
	RoleKeys                Role = "KEYS"
	RoleDrums               Role = "DRUMS"
	RoleBass                Role = "BASS"
	RoleAudio               Role = "AUDIO"
	RoleLive                Role = "LIVE"
	RoleLyrics              Role = "LYRICS"
	RoleSundaySchoolTeacher Role = "SUNDAY SCHOOL TEACHER"
	RoleBackup              Role = "BACKUP"
	RoleElectric            Role = "ELECTRIC GUITAR"
)

// AllRoles returns every role in assignment priority order. The scheduler
// fills roles in this order, so roles that other rules read (worship leader,
// bass) come before the roles that depend on them (acoustic, live).
func AllRoles() []Role {
	return []Role{
		RoleWorshipLeader,
		RoleEmcee,
		RoleAcoustic,
		RoleKeys,
		RoleDrums,
		RoleBass,
		RoleAudio,
		RoleLive,
		RoleLyrics,
		RoleSundaySchoolTeacher,
		RoleBackup,
		RoleElectric,
	}
}

// ScheduleOrder returns the roles in the order they appear on the published
// schedule. This is a display ordering only and differs from AllRoles.
func ScheduleOrder() []Role {
	return []Role{
		RoleEmcee,
		RoleWorshipLeader,
		RoleAcoustic,
		RoleKeys,
		RoleDrums,
		RoleBass,
		RoleAudio,
		RoleLive,
		RoleLyrics,
		RoleBackup,
		RoleElectric,
		RoleSundaySchoolTeacher,
	}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleWorshipLeader, RoleEmcee, RoleAcoustic, RoleKeys, RoleDrums,
		RoleBass, RoleAudio, RoleLive, RoleLyrics, RoleSundaySchoolTeacher,
		RoleBackup, RoleElectric:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a role tag from a data source into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
