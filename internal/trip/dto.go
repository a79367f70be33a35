package trip

// CreateTripRequest represents the request to create a new trip
type CreateTripRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateTripRequest represents the request to update a trip
type UpdateTripRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// InviteParticipantRequest represents the request to invite a user to a trip
type InviteParticipantRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Description  *string                `json:"description,omitempty"`
	CreatedBy    int64                  `json:"created_by"`
	CreatedAt    string                 `json:"created_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents a participant in a trip response
type ParticipantResponse struct {
	ID       int64             `json:"id"`
	UserID   int64             `json:"user_id"`
	Username string            `json:"username"`
	Email    string            `json:"email"`
	Status   ParticipantStatus `json:"status"`
	Role     ParticipantRole   `json:"role"`
	JoinedAt string            `json:"joined_at"`
}

// InviteResponse carries the invite token for a newly invited participant
type InviteResponse struct {
	Participant *ParticipantResponse `json:"participant"`
	InviteToken string               `json:"invite_token"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	return &TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Username: p.Username,
		Email:    p.Email,
		Status:   p.Status,
		Role:     p.Role,
		JoinedAt: p.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
