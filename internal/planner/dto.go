package planner

// CreateItineraryItemRequest represents the request to add an itinerary item
type CreateItineraryItemRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=255"`
	Category    ItineraryCategory `json:"category" validate:"required,oneof=place food"`
	ScheduledOn *string           `json:"scheduled_on,omitempty"`
}

// UpdateItineraryItemRequest represents the request to update an itinerary item
type UpdateItineraryItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	ScheduledOn *string          `json:"scheduled_on,omitempty"`
	Status      *ItineraryStatus `json:"status,omitempty"`
}

// CreateTravelLegRequest represents the request to add a travel leg
type CreateTravelLegRequest struct {
	TravellerNames  string  `json:"traveller_names" validate:"required"`
	Mode            *string `json:"mode,omitempty" validate:"omitempty,oneof=flight train car bus"`
	StartCity       string  `json:"start_city" validate:"required"`
	DestinationCity string  `json:"destination_city" validate:"required"`
	Details         *string `json:"details,omitempty"`
	ETD             *string `json:"etd,omitempty"`
	ETA             *string `json:"eta,omitempty"`
}

// CreateLodgingEntryRequest represents the request to add a lodging entry
type CreateLodgingEntryRequest struct {
	GuestNames string  `json:"guest_names" validate:"required"`
	PlaceName  string  `json:"place_name" validate:"required"`
	City       string  `json:"city" validate:"required"`
	Area       *string `json:"area,omitempty"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
}

// CreateTodoItemRequest represents the request to add a todo item
type CreateTodoItemRequest struct {
	Activity string  `json:"activity" validate:"required,min=1,max=255"`
	Remarks  *string `json:"remarks,omitempty"`
}

// UpdateTodoItemRequest represents the request to update a todo item
type UpdateTodoItemRequest struct {
	Activity  *string `json:"activity,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Remarks   *string `json:"remarks,omitempty"`
}
