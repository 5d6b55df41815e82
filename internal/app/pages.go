package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"hotel_admin/internal/domain"
)

// Notifier shows transient feedback for a console action.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// ErrIncompleteForm is returned when a form misses a required field; no
// request is sent in that case.
var ErrIncompleteForm = errors.New("Please fill in all required fields")

/********** dashboard **********/

type StatCard struct {
	Title       string
	Value       string
	Description string
	Trend       string
}

type BookingRow struct {
	ID       string
	Guest    string
	Room     string
	Status   string
	CheckIn  string
	CheckOut string
}

type DashboardPage struct {
	api     domain.AdminAPI
	notify  Notifier
	stats   *domain.DashboardStats
	Loading bool
}

func NewDashboardPage(api domain.AdminAPI, n Notifier) *DashboardPage {
	return &DashboardPage{api: api, notify: n}
}

func (p *DashboardPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	st, err := p.api.GetDashboardStats(ctx)
	if err != nil {
		p.notify.Error("Failed to load dashboard data", err)
		return err
	}
	p.stats = &st
	return nil
}

// Empty reports that there is nothing to render ("No data available").
func (p *DashboardPage) Empty() bool { return p.stats == nil }

func (p *DashboardPage) Cards() []StatCard {
	s := p.stats
	if s == nil {
		return nil
	}
	return []StatCard{
		{
			Title:       "Total Rooms",
			Value:       fmt.Sprint(s.TotalRooms),
			Description: fmt.Sprintf("%d available", s.AvailableRooms),
			Trend:       fmt.Sprintf("%d occupied", s.OccupiedRooms),
		},
		{
			Title:       "Occupancy Rate",
			Value:       humanize.FtoaWithDigits(s.OccupancyRate, 1) + "%",
			Description: fmt.Sprintf("%d rooms occupied", s.OccupiedRooms),
			Trend:       fmt.Sprintf("%d available", s.AvailableRooms),
		},
		{
			Title:       "Bookings Today",
			Value:       fmt.Sprint(s.BookingsToday),
			Description: fmt.Sprintf("%d check-ins, %d check-outs", s.CheckInsToday, s.CheckOutsToday),
			Trend:       "Today's activity",
		},
		{
			Title:       "Revenue (Month)",
			Value:       "$" + humanize.CommafWithDigits(math.Round(s.MonthlyRevenue*100)/100, 2),
			Description: "Current month",
			Trend:       "Total bookings revenue",
		},
	}
}

func (p *DashboardPage) RecentBookings() []BookingRow {
	if p.stats == nil {
		return nil
	}
	out := make([]BookingRow, 0, len(p.stats.RecentBookings))
	for _, b := range p.stats.RecentBookings {
		out = append(out, bookingRow(b))
	}
	return out
}

func bookingRow(b domain.Booking) BookingRow {
	return BookingRow{
		ID:       b.ID,
		Guest:    b.Guest,
		Room:     b.Room,
		Status:   b.Status.Label(),
		CheckIn:  b.CheckIn.String(),
		CheckOut: b.CheckOut.String(),
	}
}

/********** rooms **********/

// RoomForm is the add/edit dialog state.
type RoomForm struct {
	Number   string
	Type     domain.RoomType
	Status   domain.RoomStatus
	Price    float64
	Capacity int
}

func DefaultRoomForm() RoomForm {
	return RoomForm{Type: domain.RoomStandard, Status: domain.RoomAvailable, Price: 0, Capacity: 2}
}

// FormFromRoom prefills the edit dialog.
func FormFromRoom(r domain.Room) RoomForm {
	return RoomForm{Number: r.Number, Type: r.Type, Status: r.Status, Price: r.Price, Capacity: r.Capacity}
}

func (f RoomForm) complete() bool { return f.Number != "" && f.Price != 0 }

func (f RoomForm) input() domain.RoomInput {
	return domain.RoomInput{Number: f.Number, Type: f.Type, Status: f.Status, Price: f.Price, Capacity: f.Capacity}
}

type RoomsPage struct {
	api     domain.AdminAPI
	notify  Notifier
	Rooms   []domain.Room
	Form    RoomForm
	Loading bool
}

func NewRoomsPage(api domain.AdminAPI, n Notifier) *RoomsPage {
	return &RoomsPage{api: api, notify: n, Form: DefaultRoomForm()}
}

func (p *RoomsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	rooms, err := p.api.ListRooms(ctx)
	if err != nil {
		p.notify.Error("Failed to load rooms", err)
		return err
	}
	p.Rooms = rooms
	return nil
}

// Add creates a room from the current form and appends it to the list.
func (p *RoomsPage) Add(ctx context.Context) error {
	if !p.Form.complete() {
		p.notify.Error(ErrIncompleteForm.Error(), ErrIncompleteForm)
		return ErrIncompleteForm
	}
	room, err := p.api.CreateRoom(ctx, p.Form.input())
	if err != nil {
		p.notify.Error("Failed to add room", err)
		return err
	}
	p.Rooms = append(p.Rooms, room)
	p.Form = DefaultRoomForm()
	p.notify.Success("Room added successfully")
	return nil
}

// Update replaces room id with the current form. The server's copy is used
// when it returns one, otherwise the form is merged into the local copy.
func (p *RoomsPage) Update(ctx context.Context, id string) error {
	if id == "" || !p.Form.complete() {
		p.notify.Error(ErrIncompleteForm.Error(), ErrIncompleteForm)
		return ErrIncompleteForm
	}
	updated, err := p.api.UpdateRoom(ctx, id, p.Form.input())
	if err != nil {
		p.notify.Error("Failed to update room", err)
		return err
	}
	for i := range p.Rooms {
		if p.Rooms[i].ID != id {
			continue
		}
		if updated != nil {
			p.Rooms[i] = *updated
		} else {
			f := p.Form
			p.Rooms[i].Number, p.Rooms[i].Type, p.Rooms[i].Status = f.Number, f.Type, f.Status
			p.Rooms[i].Price, p.Rooms[i].Capacity = f.Price, f.Capacity
		}
	}
	p.Form = DefaultRoomForm()
	p.notify.Success("Room updated successfully")
	return nil
}

func (p *RoomsPage) Delete(ctx context.Context, id string) error {
	if _, err := p.api.DeleteRoom(ctx, id); err != nil {
		p.notify.Error("Failed to delete room", err)
		return err
	}
	kept := make([]domain.Room, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	p.Rooms = kept
	p.notify.Success("Room deleted successfully")
	return nil
}

// StatusTone names the colour a room status badge is rendered with.
func StatusTone(s domain.RoomStatus) string {
	switch s {
	case domain.RoomAvailable:
		return "success"
	case domain.RoomOccupied:
		return "destructive"
	case domain.RoomMaintenance:
		return "warning"
	default:
		return "muted"
	}
}

/********** bookings **********/

type BookingsPage struct {
	api      domain.AdminAPI
	notify   Notifier
	Bookings []domain.Booking
	Loading  bool
}

func NewBookingsPage(api domain.AdminAPI, n Notifier) *BookingsPage {
	return &BookingsPage{api: api, notify: n}
}

func (p *BookingsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	bs, err := p.api.ListBookings(ctx)
	if err != nil {
		p.notify.Error("Failed to load bookings", err)
		return err
	}
	p.Bookings = bs
	return nil
}

// Create shows the server's reason (e.g. "Room not available") on failure.
func (p *BookingsPage) Create(ctx context.Context, in domain.BookingInput) error {
	if in.Guest == "" || in.RoomID == "" || in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		p.notify.Error(ErrIncompleteForm.Error(), ErrIncompleteForm)
		return ErrIncompleteForm
	}
	b, err := p.api.CreateBooking(ctx, in)
	if err != nil {
		p.notify.Error(err.Error(), err)
		return err
	}
	p.Bookings = append(p.Bookings, b)
	p.notify.Success("Booking created successfully")
	return nil
}

func (p *BookingsPage) ChangeStatus(ctx context.Context, id string, st domain.BookingStatus) error {
	updated, err := p.api.UpdateBookingStatus(ctx, id, st)
	if err != nil {
		p.notify.Error("Failed to update booking status", err)
		return err
	}
	for i := range p.Bookings {
		if p.Bookings[i].ID != id {
			continue
		}
		if updated != nil {
			p.Bookings[i] = *updated
		} else {
			p.Bookings[i].Status = st
		}
	}
	p.notify.Success("Booking status updated")
	return nil
}

func (p *BookingsPage) Delete(ctx context.Context, id string) error {
	if _, err := p.api.DeleteBooking(ctx, id); err != nil {
		p.notify.Error("Failed to delete booking", err)
		return err
	}
	kept := make([]domain.Booking, 0, len(p.Bookings))
	for _, b := range p.Bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	p.Bookings = kept
	p.notify.Success("Booking deleted successfully")
	return nil
}

func (p *BookingsPage) Rows() []BookingRow {
	out := make([]BookingRow, 0, len(p.Bookings))
	for _, b := range p.Bookings {
		out = append(out, bookingRow(b))
	}
	return out
}

/********** settings **********/

type SettingsPage struct {
	api     domain.AdminAPI
	notify  Notifier
	hotel   *domain.HotelSettings
	Form    domain.HotelSettingsInput
	Loading bool
	Saving  bool
}

func NewSettingsPage(api domain.AdminAPI, n Notifier) *SettingsPage {
	return &SettingsPage{api: api, notify: n}
}

func (p *SettingsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	hs, err := p.api.GetHotelSettings(ctx)
	if err != nil {
		p.notify.Error("Failed to load hotel settings", err)
		return err
	}
	p.hotel = &hs
	p.Form = domain.HotelSettingsInput{Name: hs.Name, Address: hs.Address, Phone: hs.Phone, Email: hs.Email}
	return nil
}

// Hotel returns the settings as last loaded or saved, nil before Load.
func (p *SettingsPage) Hotel() *domain.HotelSettings { return p.hotel }

// Save is a no-op until settings were loaded.
func (p *SettingsPage) Save(ctx context.Context) error {
	if p.hotel == nil {
		return nil
	}
	p.Saving = true
	defer func() { p.Saving = false }()

	updated, err := p.api.UpdateHotelSettings(ctx, p.hotel.ID, p.Form)
	if err != nil {
		p.notify.Error("Failed to update settings", err)
		return err
	}
	if updated != nil {
		p.hotel = updated
	} else {
		f := p.Form
		p.hotel.Name, p.hotel.Address, p.hotel.Phone, p.hotel.Email = f.Name, f.Address, f.Phone, f.Email
	}
	p.notify.Success("Settings updated successfully")
	return nil
}
