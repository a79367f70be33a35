// Package planner covers the non-financial trip planning data: itinerary
// items, travel legs, lodging entries and todo lists.
package planner

import "time"

// ItineraryStatus represents the status of an itinerary item
type ItineraryStatus string

const (
	ItineraryStatusPending ItineraryStatus = "PENDING"
	ItineraryStatusDone    ItineraryStatus = "DONE"
)

// ItineraryCategory represents the kind of itinerary item
type ItineraryCategory string

const (
	ItineraryCategoryPlace ItineraryCategory = "place"
	ItineraryCategoryFood  ItineraryCategory = "food"
)

// ItineraryItem represents a place to visit or food to try on a trip
type ItineraryItem struct {
	ID          int64             `json:"id"`
	TripID      int64             `json:"trip_id"`
	Name        string            `json:"name"`
	Category    ItineraryCategory `json:"category"`
	ScheduledOn *string           `json:"scheduled_on,omitempty"`
	Status      ItineraryStatus   `json:"status"`
}

// TravelLeg represents one journey segment of a trip
type TravelLeg struct {
	ID              int64   `json:"id"`
	TripID          int64   `json:"trip_id"`
	TravellerNames  string  `json:"traveller_names"`
	Mode            *string `json:"mode,omitempty"` // flight, train, car, bus
	StartCity       string  `json:"start_city"`
	DestinationCity string  `json:"destination_city"`
	Details         *string `json:"details,omitempty"`
	ETD             *string `json:"etd,omitempty"`
	ETA             *string `json:"eta,omitempty"`
}

// LodgingEntry represents a place participants stay during a trip
type LodgingEntry struct {
	ID         int64   `json:"id"`
	TripID     int64   `json:"trip_id"`
	GuestNames string  `json:"guest_names"`
	PlaceName  string  `json:"place_name"`
	City       string  `json:"city"`
	Area       *string `json:"area,omitempty"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
}

// TodoItem represents a pre-trip task
type TodoItem struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	Activity  string    `json:"activity"`
	Completed bool      `json:"completed"`
	Remarks   *string   `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
