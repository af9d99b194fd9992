package auth

// Role grades what a principal may do. Roles come from the sessions
// service and are trusted as-is.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleClubAdmin Role = "club-admin"
	RoleReferee   Role = "referee"
	RoleObserver  Role = "observer"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID string
	Role   Role
	// ClubID is set for club-admin principals and scopes their writes.
	ClubID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanManageClub reports whether the principal may change rosters and
// players of the given club.
func (p Principal) CanManageClub(clubID string) bool {
	if p.Role == RoleAdmin {
		return true
	}
	return p.Role == RoleClubAdmin && p.ClubID != "" && p.ClubID == clubID
}
