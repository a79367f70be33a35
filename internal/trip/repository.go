package trip

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles trip data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new trip into the database
func (r *Repository) Create(ctx context.Context, createdBy int64, req *CreateTripRequest) (*Trip, error) {
	query := `
		INSERT INTO trips (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_by, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Description, createdBy).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

// GetByID retrieves a trip by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Trip, error) {
	query := `
		SELECT id, name, description, created_by, created_at
		FROM trips
		WHERE id = $1
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// ListByUserID retrieves all trips a user participates in
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Trip, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(DISTINCT t.id)
		FROM trips t
		JOIN trip_participants tp ON t.id = tp.trip_id
		WHERE tp.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `
		SELECT t.id, t.name, t.description, t.created_by, t.created_at
		FROM trips t
		JOIN trip_participants tp ON t.id = tp.trip_id
		WHERE tp.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip := &Trip{}
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Description,
			&trip.CreatedBy,
			&trip.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, total, nil
}

// Update modifies an existing trip
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateTripRequest) (*Trip, error) {
	query := `
		UPDATE trips
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, created_by, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return trip, nil
}

// Delete removes a trip from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTripNotFound
	}

	return nil
}

// AddParticipant adds a user to a trip with the given status, role and invite token
func (r *Repository) AddParticipant(ctx context.Context, tripID, userID int64, status ParticipantStatus, role ParticipantRole, inviteToken *string) (*Participant, error) {
	query := `
		INSERT INTO trip_participants (trip_id, user_id, status, role, invite_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trip_id, user_id, status, role, invite_token, joined_at
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID, status, role, inviteToken).Scan(
		&p.ID,
		&p.TripID,
		&p.UserID,
		&p.Status,
		&p.Role,
		&p.InviteToken,
		&p.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return p, nil
}

// GetParticipants retrieves all participants of a trip
func (r *Repository) GetParticipants(ctx context.Context, tripID int64) ([]*Participant, error) {
	query := `
		SELECT tp.id, tp.trip_id, tp.user_id, tp.status, tp.role, tp.invite_token, tp.joined_at,
		       u.username, u.email
		FROM trip_participants tp
		JOIN users u ON tp.user_id = u.id
		WHERE tp.trip_id = $1
		ORDER BY tp.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(
			&p.ID,
			&p.TripID,
			&p.UserID,
			&p.Status,
			&p.Role,
			&p.InviteToken,
			&p.JoinedAt,
			&p.Username,
			&p.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, nil
}

// GetParticipant retrieves a specific participant of a trip
func (r *Repository) GetParticipant(ctx context.Context, tripID, userID int64) (*Participant, error) {
	query := `
		SELECT tp.id, tp.trip_id, tp.user_id, tp.status, tp.role, tp.invite_token, tp.joined_at,
		       u.username, u.email
		FROM trip_participants tp
		JOIN users u ON tp.user_id = u.id
		WHERE tp.trip_id = $1 AND tp.user_id = $2
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID).Scan(
		&p.ID,
		&p.TripID,
		&p.UserID,
		&p.Status,
		&p.Role,
		&p.InviteToken,
		&p.JoinedAt,
		&p.Username,
		&p.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// ActivateByToken flips an invited participant to ACTIVE by invite token
func (r *Repository) ActivateByToken(ctx context.Context, tripID int64, token string) (*Participant, error) {
	query := `
		UPDATE trip_participants
		SET status = $3, invite_token = NULL
		WHERE trip_id = $1 AND invite_token = $2
		RETURNING id, trip_id, user_id, status, role, invite_token, joined_at
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, tripID, token, ParticipantStatusActive).Scan(
		&p.ID,
		&p.TripID,
		&p.UserID,
		&p.Status,
		&p.Role,
		&p.InviteToken,
		&p.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to activate participant: %w", err)
	}

	return p, nil
}

// RemoveParticipant removes a user from a trip
func (r *Repository) RemoveParticipant(ctx context.Context, tripID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trip_participants WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
