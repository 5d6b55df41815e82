package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hotel_admin/internal/domain"
	"hotel_admin/internal/storage/memory"
)

func TestRepo_BookingsCarryRoomNumberNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := memory.New(domain.HotelSettings{ID: "h1", Name: "Grand Hotel"})

	if err := r.InsertRoom(ctx, domain.Room{ID: "r1", Number: "101"}); err != nil {
		t.Fatalf("InsertRoom: %v", err)
	}
	older := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	_ = r.InsertBooking(ctx, domain.Booking{ID: "b1", RoomID: "r1", CreatedAt: &older})
	_ = r.InsertBooking(ctx, domain.Booking{ID: "b2", RoomID: "r1", CreatedAt: &newer})

	bs, err := r.ListBookings(ctx)
	if err != nil || len(bs) != 2 {
		t.Fatalf("ListBookings: (%+v, %v)", bs, err)
	}
	if bs[0].ID != "b2" || bs[0].Room != "101" {
		t.Fatalf("unexpected order or room: %+v", bs)
	}

	if err := r.DeleteRoom(ctx, "r1"); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	b, err := r.GetBooking(ctx, "b1")
	if err != nil || b.Room != "" {
		t.Fatalf("booking of a deleted room: (%+v, %v)", b, err)
	}
}

func TestRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	r := memory.New(domain.HotelSettings{})

	checks := map[string]error{
		"GetRoom":             func() error { _, err := r.GetRoom(ctx, "x"); return err }(),
		"UpdateRoom":          r.UpdateRoom(ctx, domain.Room{ID: "x"}),
		"DeleteRoom":          r.DeleteRoom(ctx, "x"),
		"GetBooking":          func() error { _, err := r.GetBooking(ctx, "x"); return err }(),
		"UpdateBookingStatus": r.UpdateBookingStatus(ctx, "x", domain.BookingCheckedIn),
		"DeleteBooking":       r.DeleteBooking(ctx, "x"),
		"GetSettings":         func() error { _, err := r.GetSettings(ctx); return err }(),
	}
	for name, err := range checks {
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestRepo_RoomNumberIsUnique(t *testing.T) {
	ctx := context.Background()
	r := memory.New(domain.HotelSettings{})

	if err := r.InsertRoom(ctx, domain.Room{ID: "r1", Number: "101"}); err != nil {
		t.Fatalf("InsertRoom r1: %v", err)
	}
	if err := r.InsertRoom(ctx, domain.Room{ID: "r2", Number: "101"}); !errors.Is(err, domain.ErrDuplicateRoomNumber) {
		t.Fatalf("InsertRoom duplicate: %v", err)
	}
	if err := r.InsertRoom(ctx, domain.Room{ID: "r2", Number: "102"}); err != nil {
		t.Fatalf("InsertRoom r2: %v", err)
	}
	if err := r.UpdateRoom(ctx, domain.Room{ID: "r2", Number: "101"}); !errors.Is(err, domain.ErrDuplicateRoomNumber) {
		t.Fatalf("UpdateRoom onto a taken number: %v", err)
	}
	// keeping its own number is fine
	if err := r.UpdateRoom(ctx, domain.Room{ID: "r1", Number: "101", Price: 99}); err != nil {
		t.Fatalf("UpdateRoom same number: %v", err)
	}
}

func TestRepo_InsertBookingChecksAvailability(t *testing.T) {
	ctx := context.Background()
	r := memory.New(domain.HotelSettings{})
	stay := func(id string, in, out int, st domain.BookingStatus) domain.Booking {
		return domain.Booking{ID: id, RoomID: "r1", Status: st,
			CheckIn: domain.NewDate(2030, 1, in), CheckOut: domain.NewDate(2030, 1, out)}
	}

	if err := r.InsertBooking(ctx, stay("done", 1, 3, domain.BookingCheckedOut)); err != nil {
		t.Fatalf("checked-out stay: %v", err)
	}

	const workers = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := r.InsertBooking(ctx, stay(fmt.Sprint("b", i), 1, 3, domain.BookingReserved))
			switch {
			case err == nil:
				mu.Lock()
				accepted++
				mu.Unlock()
			case !errors.Is(err, domain.ErrRoomUnavailable):
				t.Errorf("InsertBooking %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	if accepted != 1 {
		t.Fatalf("accepted %d overlapping bookings, want 1", accepted)
	}

	if err := r.InsertBooking(ctx, stay("next", 3, 5, domain.BookingReserved)); err != nil {
		t.Fatalf("adjacent stay: %v", err)
	}
}
