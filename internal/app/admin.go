package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_admin/internal/domain"
)

const (
	statsKey    = "dashboard:stats"
	settingsKey = "hotel:settings"

	recentBookings = 5
)

// AdminService backs the HTTP API: validation, availability, room status side
// effects and dashboard aggregation. Stats and settings are cached; every write
// evicts them.
type AdminService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
	newID    func() string
}

func NewAdminService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *AdminService {
	return &AdminService{repo: r, cache: c, cacheTTL: ttl, now: time.Now, newID: uuid.NewString}
}

// WithClock overrides the time source (tests).
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalid}, args...)...)
}

/********** rooms **********/

func (s *AdminService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	return rooms, nil
}

func validateRoom(in *domain.RoomInput) error {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return invalid("room number is required")
	}
	if in.Price <= 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return invalid("price must be a positive number")
	}
	if in.Type == "" {
		in.Type = domain.RoomStandard
	}
	if !in.Type.Valid() {
		return invalid("unknown room type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = domain.RoomAvailable
	}
	if !in.Status.Valid() {
		return invalid("unknown room status %q", in.Status)
	}
	if in.Capacity < 1 {
		return invalid("capacity must be at least 1")
	}
	return nil
}

func (s *AdminService) CreateRoom(ctx context.Context, in domain.RoomInput) (domain.Room, error) {
	if err := validateRoom(&in); err != nil {
		return domain.Room{}, err
	}
	r := domain.Room{
		ID: s.newID(), Number: in.Number, Type: in.Type, Status: in.Status,
		Price: in.Price, Capacity: in.Capacity,
	}
	if err := s.repo.InsertRoom(ctx, r); err != nil {
		return domain.Room{}, err
	}
	s.invalidateStats(ctx)
	return r, nil
}

func (s *AdminService) UpdateRoom(ctx context.Context, id string, in domain.RoomInput) (domain.Room, error) {
	if err := validateRoom(&in); err != nil {
		return domain.Room{}, err
	}
	if _, err := s.repo.GetRoom(ctx, id); err != nil {
		return domain.Room{}, err
	}
	r := domain.Room{
		ID: id, Number: in.Number, Type: in.Type, Status: in.Status,
		Price: in.Price, Capacity: in.Capacity,
	}
	if err := s.repo.UpdateRoom(ctx, r); err != nil {
		return domain.Room{}, err
	}
	s.invalidateStats(ctx)
	return r, nil
}

func (s *AdminService) DeleteRoom(ctx context.Context, id string) error {
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

/********** bookings **********/

func (s *AdminService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bs, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	return bs, nil
}

// CreateBooking rejects a booking whose nights overlap another active booking
// of the same room with domain.ErrRoomUnavailable. The overlap check runs
// inside the repository write.
func (s *AdminService) CreateBooking(ctx context.Context, in domain.BookingInput) (domain.Booking, error) {
	in.Guest = strings.TrimSpace(in.Guest)
	if in.Guest == "" {
		return domain.Booking{}, invalid("guest is required")
	}
	if in.RoomID == "" {
		return domain.Booking{}, invalid("roomId is required")
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return domain.Booking{}, invalid("checkIn and checkOut are required")
	}
	if !in.CheckOut.After(in.CheckIn.Time) {
		return domain.Booking{}, invalid("checkOut must be after checkIn")
	}
	if in.Status == "" {
		in.Status = domain.BookingReserved
	}
	if in.Status != domain.BookingReserved && in.Status != domain.BookingCheckedIn {
		return domain.Booking{}, invalid("new bookings must be reserved or checked-in")
	}

	room, err := s.repo.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, invalid("room %s does not exist", in.RoomID)
		}
		return domain.Booking{}, err
	}
	if room.Status == domain.RoomMaintenance {
		return domain.Booking{}, domain.ErrRoomUnavailable
	}

	now := s.now().UTC()
	b := domain.Booking{
		ID:        s.newID(),
		Guest:     in.Guest,
		RoomID:    room.ID,
		Room:      room.Number,
		Status:    in.Status,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		CreatedAt: &now,
	}
	if err := s.repo.InsertBooking(ctx, b); err != nil {
		return domain.Booking{}, err
	}
	if b.Status == domain.BookingCheckedIn {
		s.setRoomStatus(ctx, room, domain.RoomOccupied)
	}
	s.invalidateStats(ctx)
	return b, nil
}

// UpdateBookingStatus moves a booking forward and keeps the room status in
// step: checked-in occupies the room, checked-out frees it.
func (s *AdminService) UpdateBookingStatus(ctx context.Context, id string, st domain.BookingStatus) error {
	if !st.Valid() {
		return invalid("unknown booking status %q", st)
	}
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == st {
		return nil
	}
	if !b.Status.CanMoveTo(st) {
		return invalid("cannot move booking from %s to %s", b.Status, st)
	}
	if err := s.repo.UpdateBookingStatus(ctx, id, st); err != nil {
		return err
	}

	if room, err := s.repo.GetRoom(ctx, b.RoomID); err == nil {
		switch st {
		case domain.BookingCheckedIn:
			s.setRoomStatus(ctx, room, domain.RoomOccupied)
		case domain.BookingCheckedOut:
			if room.Status == domain.RoomOccupied {
				s.setRoomStatus(ctx, room, domain.RoomAvailable)
			}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *AdminService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// setRoomStatus is best effort: the booking change already happened.
func (s *AdminService) setRoomStatus(ctx context.Context, r domain.Room, st domain.RoomStatus) {
	if r.Status == st {
		return
	}
	r.Status = st
	if err := s.repo.UpdateRoom(ctx, r); err != nil {
		log.Warn().Err(err).Str("room", r.ID).Str("status", string(st)).Msg("room status not updated")
	}
}

/********** dashboard **********/

func (s *AdminService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	if ok, _ := s.cache.Get(ctx, statsKey, &out); ok {
		return out, nil
	}
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	out = ComputeStats(rooms, bookings, s.now())
	_ = s.cache.Set(ctx, statsKey, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// ComputeStats aggregates the dashboard view as of now (in now's location).
// Revenue counts price x nights for bookings checking in this calendar month.
func ComputeStats(rooms []domain.Room, bookings []domain.Booking, now time.Time) domain.DashboardStats {
	out := domain.DashboardStats{TotalRooms: len(rooms), RecentBookings: []domain.Booking{}}

	price := make(map[string]float64, len(rooms))
	for _, r := range rooms {
		price[r.ID] = r.Price
		switch r.Status {
		case domain.RoomAvailable:
			out.AvailableRooms++
		case domain.RoomOccupied:
			out.OccupiedRooms++
		}
	}
	if out.TotalRooms > 0 {
		out.OccupancyRate = math.Round(float64(out.OccupiedRooms) * 100 / float64(out.TotalRooms))
	}

	today := domain.DateOf(now)
	for _, b := range bookings {
		if b.CreatedAt != nil && domain.DateOf(b.CreatedAt.In(now.Location())).Equal(today.Time) {
			out.BookingsToday++
		}
		if b.CheckIn.Equal(today.Time) {
			out.CheckInsToday++
		}
		if b.CheckOut.Equal(today.Time) {
			out.CheckOutsToday++
		}
		if b.CheckIn.Year() == today.Year() && b.CheckIn.Month() == today.Month() {
			out.MonthlyRevenue += price[b.RoomID] * float64(domain.Nights(b.CheckIn, b.CheckOut))
		}
	}
	out.MonthlyRevenue = math.Round(out.MonthlyRevenue*100) / 100

	recent := append([]domain.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool { return newer(recent[i], recent[j]) })
	if len(recent) > recentBookings {
		recent = recent[:recentBookings]
	}
	out.RecentBookings = append(out.RecentBookings, recent...)
	return out
}

// newer orders by creation time, falling back to check-in date.
func newer(a, b domain.Booking) bool {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		return a.CreatedAt.After(*b.CreatedAt)
	case a.CreatedAt != nil:
		return true
	case b.CreatedAt != nil:
		return false
	}
	return a.CheckIn.After(b.CheckIn.Time)
}

/********** settings **********/

func (s *AdminService) GetSettings(ctx context.Context) (domain.HotelSettings, error) {
	var hs domain.HotelSettings
	if ok, _ := s.cache.Get(ctx, settingsKey, &hs); ok {
		return hs, nil
	}
	hs, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.HotelSettings{}, err
	}
	_ = s.cache.Set(ctx, settingsKey, hs, int(s.cacheTTL.Seconds()))
	return hs, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, id string, in domain.HotelSettingsInput) (domain.HotelSettings, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.HotelSettings{}, invalid("hotel name is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return domain.HotelSettings{}, invalid("email %q is not valid", in.Email)
	}
	cur, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.HotelSettings{}, err
	}
	if cur.ID != id {
		return domain.HotelSettings{}, domain.ErrNotFound
	}
	hs := domain.HotelSettings{ID: id, Name: in.Name, Address: in.Address, Phone: in.Phone, Email: in.Email}
	if err := s.repo.UpdateSettings(ctx, hs); err != nil {
		return domain.HotelSettings{}, err
	}
	_ = s.cache.Del(ctx, settingsKey)
	return hs, nil
}

func (s *AdminService) invalidateStats(ctx context.Context) {
	_ = s.cache.Del(ctx, statsKey)
}
