/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE CONTRACT:
  The delivery-times endpoint always answers 200 with a DeliveryResultDTO:
  either a list of dated pickup windows or a single error string. Only
  malformed input produces a non-200 status.

SEE ALSO:
  - handlers.go: Uses these types
  - logistics/types.go: The domain model these project
*/
package api

import (
	"fmt"

	"github.com/warp/delivery-engine/logistics"
)

// =============================================================================
// DELIVERY TIMES
// =============================================================================

// PickupWindowDTO is one pickup option: a date and its time range.
type PickupWindowDTO struct {
	Date      string   `json:"date"`
	TimeRange []string `json:"time_range"`
	Formatted string   `json:"formatted"`
}

// DeliveryResultDTO is the delivery-times response: a list of distinct
// pickup dates, or a single error string with an empty list.
type DeliveryResultDTO struct {
	Dates []PickupWindowDTO `json:"dates"`
	Error string            `json:"error,omitempty"`
}

// =============================================================================
// CATALOG
// =============================================================================

// ScheduleDTO describes one recurring delivery trip.
type ScheduleDTO struct {
	StoreCode     string `json:"store_code"`
	Weekday       string `json:"weekday"`
	Frequency     int    `json:"frequency"`
	StartDate     string `json:"start_date"`
	DepartureTime string `json:"departure_time"`
	TravelDays    int    `json:"travel_days"`
	ArrivalTime   string `json:"arrival_time"`
}

// StoreDTO describes a store and its calendar configuration.
type StoreDTO struct {
	Code             string           `json:"code"`
	RegularHours     map[string][]int `json:"regular_hours"`
	SpecialHours     map[string][]int `json:"special_hours,omitempty"`
	ClosedDates      []string         `json:"closed_dates,omitempty"`
	UnloadingMinutes int              `json:"unloading_minutes"`
	Schedules        []ScheduleDTO    `json:"schedules"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response for malformed input.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPickupWindowDTO(w logistics.Window) PickupWindowDTO {
	date := w.Date().String()
	start := w.Start.Format("15:04")
	end := w.End.Format("15:04")
	return PickupWindowDTO{
		Date:      date,
		TimeRange: []string{start, end},
		Formatted: fmt.Sprintf("%s from %s to %s", date, start, end),
	}
}

func toPickupWindowDTOs(windows []logistics.Window) []PickupWindowDTO {
	dtos := make([]PickupWindowDTO, len(windows))
	for i, w := range windows {
		dtos[i] = toPickupWindowDTO(w)
	}
	return dtos
}

func toScheduleDTO(s logistics.DeliverySchedule) ScheduleDTO {
	return ScheduleDTO{
		StoreCode:     s.StoreCode,
		Weekday:       s.Weekday.String(),
		Frequency:     s.Frequency,
		StartDate:     s.StartDate.String(),
		DepartureTime: s.DepartureTime.String(),
		TravelDays:    s.TravelDays,
		ArrivalTime:   s.ArrivalTime.String(),
	}
}

func toStoreDTO(store *logistics.Store, schedules []logistics.DeliverySchedule) StoreDTO {
	regular := make(map[string][]int)
	for weekday, hours := range store.RegularHours() {
		regular[weekday.String()] = []int{hours.Open, hours.Close}
	}

	special := make(map[string][]int)
	for date, hours := range store.SpecialHours() {
		special[date.String()] = []int{hours.Open, hours.Close}
	}

	closed := make([]string, 0)
	for _, date := range store.ClosedDates() {
		closed = append(closed, date.String())
	}

	scheduleDTOs := make([]ScheduleDTO, len(schedules))
	for i, s := range schedules {
		scheduleDTOs[i] = toScheduleDTO(s)
	}

	return StoreDTO{
		Code:             store.Code(),
		RegularHours:     regular,
		SpecialHours:     special,
		ClosedDates:      closed,
		UnloadingMinutes: int(store.Unloading().Minutes()),
		Schedules:        scheduleDTOs,
	}
}
