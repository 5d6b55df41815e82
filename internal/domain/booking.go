package domain

import "time"

type BookingStatus string

const (
	BookingReserved   BookingStatus = "reserved"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingReserved, BookingCheckedIn, BookingCheckedOut:
		return true
	}
	return false
}

// Label is the human text shown next to a booking.
func (s BookingStatus) Label() string {
	switch s {
	case BookingCheckedIn:
		return "Checked In"
	case BookingCheckedOut:
		return "Checked Out"
	default:
		return "Reserved"
	}
}

// CanMoveTo reports whether a booking in s may move to next.
// Bookings only move forward: reserved -> checked-in -> checked-out.
func (s BookingStatus) CanMoveTo(next BookingStatus) bool {
	switch s {
	case BookingReserved:
		return next == BookingCheckedIn || next == BookingCheckedOut
	case BookingCheckedIn:
		return next == BookingCheckedOut
	}
	return false
}

type Booking struct {
	ID       string        `json:"id"`
	Guest    string        `json:"guest"`
	RoomID   string        `json:"roomId"`
	Room     string        `json:"room"` // room number, for display
	Status   BookingStatus `json:"status"`
	CheckIn  Date          `json:"checkIn"`
	CheckOut Date          `json:"checkOut"`
	// CreatedAt is set by the server; older servers omit it.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// BookingInput is the body of POST /bookings. Status defaults to reserved.
type BookingInput struct {
	Guest    string        `json:"guest"`
	RoomID   string        `json:"roomId"`
	Status   BookingStatus `json:"status,omitempty"`
	CheckIn  Date          `json:"checkIn"`
	CheckOut Date          `json:"checkOut"`
}

// BookingStatusInput is the body of PATCH /bookings/{id}/status.
type BookingStatusInput struct {
	Status BookingStatus `json:"status"`
}

// Overlaps reports whether b holds its room on any night of [in, out).
func (b Booking) Overlaps(in, out Date) bool {
	return b.CheckIn.Before(out.Time) && in.Before(b.CheckOut.Time)
}

// Blocks reports whether b keeps next from being booked: same room, still
// active, overlapping nights.
func (b Booking) Blocks(next Booking) bool {
	return b.RoomID == next.RoomID && b.Status != BookingCheckedOut && b.Overlaps(next.CheckIn, next.CheckOut)
}

type DashboardStats struct {
	TotalRooms     int       `json:"totalRooms"`
	AvailableRooms int       `json:"availableRooms"`
	OccupiedRooms  int       `json:"occupiedRooms"`
	OccupancyRate  float64   `json:"occupancyRate"` // percent, 0..100
	BookingsToday  int       `json:"bookingsToday"`
	CheckInsToday  int       `json:"checkInsToday"`
	CheckOutsToday int       `json:"checkOutsToday"`
	MonthlyRevenue float64   `json:"monthlyRevenue"`
	RecentBookings []Booking `json:"recentBookings"`
}
