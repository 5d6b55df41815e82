package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalid         = errors.New("invalid input")
	ErrRoomUnavailable = errors.New("Room not available")

	// ErrDuplicateRoomNumber is an ErrInvalid.
	ErrDuplicateRoomNumber = fmt.Errorf("%w: room number already exists", ErrInvalid)
)

// HotelRepository is the persistence port of the API server.
type HotelRepository interface {
	// Rooms. InsertRoom and UpdateRoom return ErrDuplicateRoomNumber when
	// another room already has the number.
	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	InsertRoom(ctx context.Context, r Room) error
	UpdateRoom(ctx context.Context, r Room) error
	DeleteRoom(ctx context.Context, id string) error

	// Bookings
	ListBookings(ctx context.Context) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	// InsertBooking stores b unless an active (not checked-out) booking of the
	// same room overlaps its nights, in which case it returns ErrRoomUnavailable.
	// The check and the write are atomic.
	InsertBooking(ctx context.Context, b Booking) error
	UpdateBookingStatus(ctx context.Context, id string, st BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error

	// Settings
	GetSettings(ctx context.Context) (HotelSettings, error)
	UpdateSettings(ctx context.Context, s HotelSettings) error
}

// AdminAPI is what the console pages need from the remote API.
type AdminAPI interface {
	ListRooms(ctx context.Context) ([]Room, error)
	CreateRoom(ctx context.Context, in RoomInput) (Room, error)
	UpdateRoom(ctx context.Context, id string, in RoomInput) (*Room, error)
	DeleteRoom(ctx context.Context, id string) (*Room, error)

	ListBookings(ctx context.Context) ([]Booking, error)
	CreateBooking(ctx context.Context, in BookingInput) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, st BookingStatus) (*Booking, error)
	DeleteBooking(ctx context.Context, id string) (*Booking, error)

	GetDashboardStats(ctx context.Context) (DashboardStats, error)

	GetHotelSettings(ctx context.Context) (HotelSettings, error)
	UpdateHotelSettings(ctx context.Context, id string, in HotelSettingsInput) (*HotelSettings, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
