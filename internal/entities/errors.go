package entities

import "errors"

var (
	ErrTeamExists     = errors.New("team exists")
	ErrTeamNotFound   = errors.New("team not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrInviteExists   = errors.New("invitation exists")
	ErrInvalidRole    = errors.New("invalid role")
)
