package planner

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles planner data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new planner repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateItineraryItem inserts a new itinerary item
func (r *Repository) CreateItineraryItem(ctx context.Context, tripID int64, req *CreateItineraryItemRequest) (*ItineraryItem, error) {
	query := `
		INSERT INTO itinerary_items (trip_id, name, category, scheduled_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trip_id, name, category, scheduled_on, status
	`

	item := &ItineraryItem{}
	err := r.db.QueryRowContext(ctx, query, tripID, req.Name, req.Category, req.ScheduledOn).Scan(
		&item.ID,
		&item.TripID,
		&item.Name,
		&item.Category,
		&item.ScheduledOn,
		&item.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary item: %w", err)
	}

	return item, nil
}

// ListItineraryItems retrieves a trip's itinerary
func (r *Repository) ListItineraryItems(ctx context.Context, tripID int64) ([]*ItineraryItem, error) {
	query := `
		SELECT id, trip_id, name, category, scheduled_on, status
		FROM itinerary_items
		WHERE trip_id = $1
		ORDER BY scheduled_on NULLS LAST, id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary items: %w", err)
	}
	defer rows.Close()

	var items []*ItineraryItem
	for rows.Next() {
		item := &ItineraryItem{}
		if err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.Name,
			&item.Category,
			&item.ScheduledOn,
			&item.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateItineraryItem modifies an itinerary item
func (r *Repository) UpdateItineraryItem(ctx context.Context, tripID, id int64, req *UpdateItineraryItemRequest) (*ItineraryItem, error) {
	query := `
		UPDATE itinerary_items
		SET name = COALESCE($3, name),
		    scheduled_on = COALESCE($4, scheduled_on),
		    status = COALESCE($5, status)
		WHERE trip_id = $1 AND id = $2
		RETURNING id, trip_id, name, category, scheduled_on, status
	`

	item := &ItineraryItem{}
	err := r.db.QueryRowContext(ctx, query, tripID, id, req.Name, req.ScheduledOn, req.Status).Scan(
		&item.ID,
		&item.TripID,
		&item.Name,
		&item.Category,
		&item.ScheduledOn,
		&item.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update itinerary item: %w", err)
	}

	return item, nil
}

// DeleteItineraryItem removes an itinerary item
func (r *Repository) DeleteItineraryItem(ctx context.Context, tripID, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM itinerary_items WHERE trip_id = $1 AND id = $2`, tripID, id, "itinerary item")
}

// CreateTravelLeg inserts a new travel leg
func (r *Repository) CreateTravelLeg(ctx context.Context, tripID int64, req *CreateTravelLegRequest) (*TravelLeg, error) {
	query := `
		INSERT INTO travel_legs (trip_id, traveller_names, mode, start_city, destination_city, details, etd, eta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, trip_id, traveller_names, mode, start_city, destination_city, details, etd, eta
	`

	leg := &TravelLeg{}
	err := r.db.QueryRowContext(ctx, query, tripID, req.TravellerNames, req.Mode, req.StartCity,
		req.DestinationCity, req.Details, req.ETD, req.ETA).Scan(
		&leg.ID,
		&leg.TripID,
		&leg.TravellerNames,
		&leg.Mode,
		&leg.StartCity,
		&leg.DestinationCity,
		&leg.Details,
		&leg.ETD,
		&leg.ETA,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create travel leg: %w", err)
	}

	return leg, nil
}

// ListTravelLegs retrieves a trip's travel legs
func (r *Repository) ListTravelLegs(ctx context.Context, tripID int64) ([]*TravelLeg, error) {
	query := `
		SELECT id, trip_id, traveller_names, mode, start_city, destination_city, details, etd, eta
		FROM travel_legs
		WHERE trip_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list travel legs: %w", err)
	}
	defer rows.Close()

	var legs []*TravelLeg
	for rows.Next() {
		leg := &TravelLeg{}
		if err := rows.Scan(
			&leg.ID,
			&leg.TripID,
			&leg.TravellerNames,
			&leg.Mode,
			&leg.StartCity,
			&leg.DestinationCity,
			&leg.Details,
			&leg.ETD,
			&leg.ETA,
		); err != nil {
			return nil, fmt.Errorf("failed to scan travel leg: %w", err)
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

// DeleteTravelLeg removes a travel leg
func (r *Repository) DeleteTravelLeg(ctx context.Context, tripID, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM travel_legs WHERE trip_id = $1 AND id = $2`, tripID, id, "travel leg")
}

// CreateLodgingEntry inserts a new lodging entry
func (r *Repository) CreateLodgingEntry(ctx context.Context, tripID int64, req *CreateLodgingEntryRequest) (*LodgingEntry, error) {
	query := `
		INSERT INTO lodging_entries (trip_id, guest_names, place_name, city, area, check_in, check_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, trip_id, guest_names, place_name, city, area, check_in, check_out
	`

	entry := &LodgingEntry{}
	err := r.db.QueryRowContext(ctx, query, tripID, req.GuestNames, req.PlaceName, req.City,
		req.Area, req.CheckIn, req.CheckOut).Scan(
		&entry.ID,
		&entry.TripID,
		&entry.GuestNames,
		&entry.PlaceName,
		&entry.City,
		&entry.Area,
		&entry.CheckIn,
		&entry.CheckOut,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lodging entry: %w", err)
	}

	return entry, nil
}

// ListLodgingEntries retrieves a trip's lodging entries
func (r *Repository) ListLodgingEntries(ctx context.Context, tripID int64) ([]*LodgingEntry, error) {
	query := `
		SELECT id, trip_id, guest_names, place_name, city, area, check_in, check_out
		FROM lodging_entries
		WHERE trip_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lodging entries: %w", err)
	}
	defer rows.Close()

	var entries []*LodgingEntry
	for rows.Next() {
		entry := &LodgingEntry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.TripID,
			&entry.GuestNames,
			&entry.PlaceName,
			&entry.City,
			&entry.Area,
			&entry.CheckIn,
			&entry.CheckOut,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lodging entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteLodgingEntry removes a lodging entry
func (r *Repository) DeleteLodgingEntry(ctx context.Context, tripID, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM lodging_entries WHERE trip_id = $1 AND id = $2`, tripID, id, "lodging entry")
}

// CreateTodoItem inserts a new todo item
func (r *Repository) CreateTodoItem(ctx context.Context, tripID int64, req *CreateTodoItemRequest) (*TodoItem, error) {
	query := `
		INSERT INTO todo_items (trip_id, activity, remarks)
		VALUES ($1, $2, $3)
		RETURNING id, trip_id, activity, completed, remarks, created_at
	`

	item := &TodoItem{}
	err := r.db.QueryRowContext(ctx, query, tripID, req.Activity, req.Remarks).Scan(
		&item.ID,
		&item.TripID,
		&item.Activity,
		&item.Completed,
		&item.Remarks,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo item: %w", err)
	}

	return item, nil
}

// ListTodoItems retrieves a trip's todo list
func (r *Repository) ListTodoItems(ctx context.Context, tripID int64) ([]*TodoItem, error) {
	query := `
		SELECT id, trip_id, activity, completed, remarks, created_at
		FROM todo_items
		WHERE trip_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todo items: %w", err)
	}
	defer rows.Close()

	var items []*TodoItem
	for rows.Next() {
		item := &TodoItem{}
		if err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.Activity,
			&item.Completed,
			&item.Remarks,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateTodoItem modifies a todo item
func (r *Repository) UpdateTodoItem(ctx context.Context, tripID, id int64, req *UpdateTodoItemRequest) (*TodoItem, error) {
	query := `
		UPDATE todo_items
		SET activity = COALESCE($3, activity),
		    completed = COALESCE($4, completed),
		    remarks = COALESCE($5, remarks)
		WHERE trip_id = $1 AND id = $2
		RETURNING id, trip_id, activity, completed, remarks, created_at
	`

	item := &TodoItem{}
	err := r.db.QueryRowContext(ctx, query, tripID, id, req.Activity, req.Completed, req.Remarks).Scan(
		&item.ID,
		&item.TripID,
		&item.Activity,
		&item.Completed,
		&item.Remarks,
		&item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update todo item: %w", err)
	}

	return item, nil
}

// DeleteTodoItem removes a todo item
func (r *Repository) DeleteTodoItem(ctx context.Context, tripID, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM todo_items WHERE trip_id = $1 AND id = $2`, tripID, id, "todo item")
}

func (r *Repository) deleteRow(ctx context.Context, query string, tripID, id int64, entity string) error {
	result, err := r.db.ExecContext(ctx, query, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
