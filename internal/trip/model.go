package trip

import "time"

// ParticipantStatus represents the membership status of a trip participant
type ParticipantStatus string

const (
	ParticipantStatusInvited ParticipantStatus = "INVITED"
	ParticipantStatusActive  ParticipantStatus = "ACTIVE"
)

// ParticipantRole represents the role of a trip participant
type ParticipantRole string

const (
	ParticipantRoleOwner  ParticipantRole = "OWNER"
	ParticipantRoleMember ParticipantRole = "MEMBER"
)

// Trip represents a planned trip
type Trip struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Participant represents a user's membership in a trip
type Participant struct {
	ID          int64             `json:"id"`
	TripID      int64             `json:"trip_id"`
	UserID      int64             `json:"user_id"`
	Status      ParticipantStatus `json:"status"`
	Role        ParticipantRole   `json:"role"`
	InviteToken *string           `json:"-"`
	JoinedAt    time.Time         `json:"joined_at"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
