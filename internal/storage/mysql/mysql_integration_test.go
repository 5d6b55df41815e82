//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_admin/internal/domain"
	mysqlrepo "hotel_admin/internal/storage/mysql"
)

// migrationsDir honours MIGRATIONS_DIR, else the repo's migrations/ folder.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startMySQL runs an isolated MySQL and returns a migrated connection.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_RoomsBookingsSettings(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// rooms
	room := domain.Room{ID: "11111111-1111-1111-1111-111111111111", Number: "101",
		Type: domain.RoomDeluxe, Status: domain.RoomAvailable, Price: 149.5, Capacity: 2}
	if err := repo.InsertRoom(ctx, room); err != nil {
		t.Fatalf("InsertRoom: %v", err)
	}
	got, err := repo.GetRoom(ctx, room.ID)
	if err != nil || got != room {
		t.Fatalf("GetRoom: (%+v, %v)", got, err)
	}
	room.Status = domain.RoomMaintenance
	if err := repo.UpdateRoom(ctx, room); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	// same values again: 0 affected rows must not read as missing
	if err := repo.UpdateRoom(ctx, room); err != nil {
		t.Fatalf("UpdateRoom no-op: %v", err)
	}
	if err := repo.UpdateRoom(ctx, domain.Room{ID: "missing", Number: "x", Type: domain.RoomSuite, Status: domain.RoomAvailable}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateRoom missing: %v", err)
	}
	rooms, err := repo.ListRooms(ctx)
	if err != nil || len(rooms) != 1 || rooms[0].Status != domain.RoomMaintenance {
		t.Fatalf("ListRooms: (%+v, %v)", rooms, err)
	}

	// bookings
	created := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	b := domain.Booking{ID: "22222222-2222-2222-2222-222222222222", Guest: "Ada Lovelace", RoomID: room.ID,
		Status: domain.BookingReserved, CheckIn: domain.NewDate(2026, 10, 17), CheckOut: domain.NewDate(2026, 10, 20),
		CreatedAt: &created}
	if err := repo.InsertBooking(ctx, b); err != nil {
		t.Fatalf("InsertBooking: %v", err)
	}
	gb, err := repo.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if gb.Room != "101" || gb.CheckIn.String() != "2026-10-17" || gb.CheckOut.String() != "2026-10-20" ||
		gb.CreatedAt == nil || !gb.CreatedAt.Equal(created) {
		t.Fatalf("unexpected booking: %+v", gb)
	}
	if err := repo.UpdateBookingStatus(ctx, b.ID, domain.BookingCheckedIn); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	bs, err := repo.ListBookings(ctx)
	if err != nil || len(bs) != 1 || bs[0].Status != domain.BookingCheckedIn {
		t.Fatalf("ListBookings: (%+v, %v)", bs, err)
	}
	if err := repo.DeleteBooking(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	if err := repo.DeleteBooking(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteBooking twice: %v", err)
	}
	if err := repo.DeleteRoom(ctx, room.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}

	// settings (seeded by the migration)
	hs, err := repo.GetSettings(ctx)
	if err != nil || hs.Name != "Grand Hotel" {
		t.Fatalf("GetSettings: (%+v, %v)", hs, err)
	}
	hs.Name = "Grand Hotel & Spa"
	if err := repo.UpdateSettings(ctx, hs); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if hs2, _ := repo.GetSettings(ctx); hs2.Name != "Grand Hotel & Spa" {
		t.Fatalf("settings not updated: %+v", hs2)
	}
}

func TestRepo_MySQL_UniqueNumberAndAvailability(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	room := domain.Room{ID: "33333333-3333-3333-3333-333333333333", Number: "201",
		Type: domain.RoomStandard, Status: domain.RoomAvailable, Price: 90, Capacity: 2}
	if err := repo.InsertRoom(ctx, room); err != nil {
		t.Fatalf("InsertRoom: %v", err)
	}
	twin := room
	twin.ID = "44444444-4444-4444-4444-444444444444"
	if err := repo.InsertRoom(ctx, twin); !errors.Is(err, domain.ErrDuplicateRoomNumber) {
		t.Fatalf("InsertRoom duplicate number: %v", err)
	}
	twin.Number = "202"
	if err := repo.InsertRoom(ctx, twin); err != nil {
		t.Fatalf("InsertRoom 202: %v", err)
	}
	twin.Number = "201"
	if err := repo.UpdateRoom(ctx, twin); !errors.Is(err, domain.ErrDuplicateRoomNumber) {
		t.Fatalf("UpdateRoom onto a taken number: %v", err)
	}

	// concurrent bookings of the same nights: exactly one wins
	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.InsertBooking(ctx, domain.Booking{
				ID: fmt.Sprintf("55555555-5555-5555-5555-%012d", i), Guest: "Guest", RoomID: room.ID,
				Status: domain.BookingReserved, CheckIn: domain.NewDate(2030, 1, 1), CheckOut: domain.NewDate(2030, 1, 3),
			})
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

	// back-to-back stay is free
	if err := repo.InsertBooking(ctx, domain.Booking{ID: "66666666-6666-6666-6666-666666666666", Guest: "Next",
		RoomID: room.ID, Status: domain.BookingReserved,
		CheckIn: domain.NewDate(2030, 1, 3), CheckOut: domain.NewDate(2030, 1, 5)}); err != nil {
		t.Fatalf("adjacent booking: %v", err)
	}
}
