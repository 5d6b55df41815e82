// Package memory is an in-process HotelRepository for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"hotel_admin/internal/domain"
)

type Repo struct {
	mu       sync.RWMutex
	rooms    map[string]domain.Room
	bookings map[string]domain.Booking
	settings domain.HotelSettings
}

var _ domain.HotelRepository = (*Repo)(nil)

// New returns an empty store holding the given settings row.
func New(settings domain.HotelSettings) *Repo {
	return &Repo{
		rooms:    map[string]domain.Room{},
		bookings: map[string]domain.Booking{},
		settings: settings,
	}
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return room, nil
}

// numberTaken mirrors the unique key on rooms.number. Callers hold mu.
func (r *Repo) numberTaken(room domain.Room) bool {
	for id, other := range r.rooms {
		if id != room.ID && other.Number == room.Number {
			return true
		}
	}
	return false
}

func (r *Repo) InsertRoom(ctx context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numberTaken(room) {
		return domain.ErrDuplicateRoomNumber
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *Repo) UpdateRoom(ctx context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.numberTaken(room) {
		return domain.ErrDuplicateRoomNumber
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *Repo) DeleteRoom(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

// ListBookings returns newest first, with the current room number filled in.
func (r *Repo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, r.withRoom(b))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return r.withRoom(b), nil
}

func (r *Repo) withRoom(b domain.Booking) domain.Booking {
	b.Room = r.rooms[b.RoomID].Number
	return b
}

// InsertBooking checks availability under the write lock.
func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.bookings {
		if other.Blocks(b) {
			return domain.ErrRoomUnavailable
		}
	}
	r.bookings[b.ID] = b
	return nil
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, st domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = st
	r.bookings[id] = b
	return nil
}

func (r *Repo) DeleteBooking(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *Repo) GetSettings(ctx context.Context) (domain.HotelSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings.ID == "" {
		return domain.HotelSettings{}, domain.ErrNotFound
	}
	return r.settings, nil
}

func (r *Repo) UpdateSettings(ctx context.Context, s domain.HotelSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
	return nil
}
