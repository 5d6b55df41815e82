package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_admin/internal/adapters/redis"
	"hotel_admin/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var st domain.DashboardStats
	if ok, err := c.Get(ctx, "dashboard:stats", &st); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	in := domain.DashboardStats{TotalRooms: 12, OccupancyRate: 50, MonthlyRevenue: 1234.5,
		RecentBookings: []domain.Booking{{ID: "b1", Guest: "Ada", CheckIn: domain.NewDate(2026, 10, 17)}}}
	if err := c.Set(ctx, "dashboard:stats", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("dashboard:stats"); ttl != time.Minute {
		t.Fatalf("ttl = %s", ttl)
	}

	ok, err := c.Get(ctx, "dashboard:stats", &st)
	if !ok || err != nil {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if st.TotalRooms != 12 || len(st.RecentBookings) != 1 || st.RecentBookings[0].CheckIn.String() != "2026-10-17" {
		t.Fatalf("unexpected value: %+v", st)
	}

	if err := c.Del(ctx, "dashboard:stats"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("dashboard:stats") {
		t.Fatalf("key still present after Del")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:settings", domain.HotelSettings{ID: "h1"}, 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var hs domain.HotelSettings
	if ok, _ := c.Get(ctx, "hotel:settings", &hs); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestCache_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	if err := mr.Set("hotel:settings", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var hs domain.HotelSettings
	ok, err := c.Get(ctx, "hotel:settings", &hs)
	if ok || err == nil {
		t.Fatalf("expected miss with error, got ok=%v err=%v", ok, err)
	}
	if mr.Exists("hotel:settings") {
		t.Fatalf("corrupt entry should be deleted")
	}
}
