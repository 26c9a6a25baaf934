package entities

type PlatformStats struct {
	TotalUsers       int
	TotalTeams       int
	TotalSuperAdmins int
	TotalServes      int
	RecentSignups    int
}

type TeamStats struct {
	TotalMembers        int
	AdminCount          int
	MemberCount         int
	OtherRoleCount      int
	RecentActivityCount int
	ServeCount          int
}

type TeamMembershipCounts struct {
	TeamCount      int
	AdminTeamCount int
}
