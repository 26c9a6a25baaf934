package entities

import "time"

type Team struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

type TeamWithCounts struct {
	Team
	MemberCount int
	AdminCount  int
}

type TeamMember struct {
	TeamID      string
	UserID      string
	Role        Role
	JoinedAt    time.Time
	Email       string
	DisplayName string
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

type Invitation struct {
	ID        string
	TeamID    string
	Email     string
	Role      Role
	Status    InvitationStatus
	Token     string
	InvitedBy string
	CreatedAt time.Time
}
