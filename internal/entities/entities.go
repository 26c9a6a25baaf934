package entities

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type UserProfile struct {
	ID           string
	Email        string
	DisplayName  string
	IsSuperAdmin bool
	CreatedAt    time.Time
}

type UserWithTeams struct {
	UserProfile
	TeamCount      int
	AdminTeamCount int
}

type Serve struct {
	ID        string
	TeamID    string
	UserID    string
	ServeType string
	Result    string
	CreatedAt time.Time
}
