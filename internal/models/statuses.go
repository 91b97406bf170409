package models

type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// SwipeActionKind - вердикт свайпа
type SwipeActionKind string

const (
	SwipeLike  SwipeActionKind = "like"
	SwipePass  SwipeActionKind = "pass"
	SwipeBlock SwipeActionKind = "block"
)

// IsValid reports whether the kind is one of the three recorded verdicts.
func (k SwipeActionKind) IsValid() bool {
	switch k {
	case SwipeLike, SwipePass, SwipeBlock:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)
