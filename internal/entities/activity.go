package entities

import (
	"encoding/json"
	"time"
)

type ActivityAction string

const (
	ActionRoleChanged    ActivityAction = "role_changed"
	ActionMemberRemoved  ActivityAction = "member_removed"
	ActionInvitationSent ActivityAction = "invitation_sent"
)

// ActivityDetails is a tagged union keyed by the record's action. Records
// with an action this code does not know decode to GenericDetails.
type ActivityDetails interface {
	activityDetails()
}

type RoleChangedDetails struct {
	MemberEmail string `json:"member_email"`
	OldRole     Role   `json:"old_role"`
	NewRole     Role   `json:"new_role"`
}

type MemberRemovedDetails struct {
	MemberEmail string `json:"member_email"`
	MemberRole  Role   `json:"member_role"`
}

type InvitationSentDetails struct {
	InvitedEmail string `json:"invited_email"`
}

type GenericDetails map[string]any

func (RoleChangedDetails) activityDetails()    {}
func (MemberRemovedDetails) activityDetails()  {}
func (InvitationSentDetails) activityDetails() {}
func (GenericDetails) activityDetails()        {}

// ActivityRecord is an append-only audit entry; nothing in this service
// updates or deletes one after insert. ActorID is nil when the acting
// identity is unknown.
type ActivityRecord struct {
	ID        string
	TeamID    string
	ActorID   *string
	Action    ActivityAction
	Details   ActivityDetails
	CreatedAt time.Time
}

// ActivityWithActor is an audit record joined with the actor's identity.
// Both actor fields are empty when the actor cannot be resolved.
type ActivityWithActor struct {
	ActivityRecord
	ActorEmail       string
	ActorDisplayName string
}

type ActivityEntry struct {
	ActivityRecord
	ActorLabel  string
	Description string
}

func DecodeActivityDetails(action ActivityAction, raw []byte) (ActivityDetails, error) {
	if len(raw) == 0 {
		return GenericDetails{}, nil
	}
	switch action {
	case ActionRoleChanged:
		var d RoleChangedDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionMemberRemoved:
		var d MemberRemovedDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionInvitationSent:
		var d InvitationSentDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		var d GenericDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	}
}

func EncodeActivityDetails(details ActivityDetails) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(details)
}
