package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"hotel_admin/internal/domain"
)

// erDupEntry is MySQL's ER_DUP_ENTRY.
const erDupEntry = 1062

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.HotelRepository = (*Repo)(nil)

// affected maps "no row touched" to domain.ErrNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// roomNumberErr maps a unique-key violation on rooms.number to
// domain.ErrDuplicateRoomNumber.
func roomNumberErr(err error) error {
	var me *driver.MySQLError
	if errors.As(err, &me) && me.Number == erDupEntry {
		return domain.ErrDuplicateRoomNumber
	}
	return err
}

/********** rooms **********/

type scanner interface{ Scan(dest ...any) error }

func scanRoom(s scanner) (domain.Room, error) {
	var r domain.Room
	var typ, status string
	if err := s.Scan(&r.ID, &r.Number, &typ, &status, &r.Price, &r.Capacity); err != nil {
		return domain.Room{}, err
	}
	r.Type, r.Status = domain.RoomType(typ), domain.RoomStatus(status)
	return r, nil
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	room, err := scanRoom(r.db.QueryRowContext(ctx, getRoomSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrNotFound
	}
	return room, err
}

func (r *Repo) InsertRoom(ctx context.Context, room domain.Room) error {
	_, err := r.db.ExecContext(ctx, insertRoomSQL,
		room.ID, room.Number, string(room.Type), string(room.Status), room.Price, room.Capacity)
	return roomNumberErr(err)
}

// UpdateRoom needs the row to exist. MySQL reports 0 affected rows for a
// no-op update too, so a miss is confirmed with a lookup.
func (r *Repo) UpdateRoom(ctx context.Context, room domain.Room) error {
	res, err := r.db.ExecContext(ctx, updateRoomSQL,
		room.Number, string(room.Type), string(room.Status), room.Price, room.Capacity, room.ID)
	if err := affected(res, roomNumberErr(err)); errors.Is(err, domain.ErrNotFound) {
		_, gerr := r.GetRoom(ctx, room.ID)
		return gerr
	} else if err != nil {
		return err
	}
	return nil
}

func (r *Repo) DeleteRoom(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, deleteRoomSQL, id))
}

/********** bookings **********/

func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b                 domain.Booking
		status            string
		checkIn, checkOut time.Time
		created           sql.NullTime
	)
	if err := s.Scan(&b.ID, &b.Guest, &b.RoomID, &b.Room, &status, &checkIn, &checkOut, &created); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	b.CheckIn, b.CheckOut = domain.DateOf(checkIn), domain.DateOf(checkOut)
	if created.Valid {
		t := created.Time.UTC()
		b.CreatedAt = &t
	}
	return b, nil
}

func (r *Repo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

// InsertBooking locks the room row, so bookings of one room are checked and
// written one at a time.
func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) error {
	created := time.Now().UTC()
	if b.CreatedAt != nil {
		created = b.CreatedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var roomID string
	if err := tx.QueryRowContext(ctx, lockRoomSQL, b.RoomID).Scan(&roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var n int
	err = tx.QueryRowContext(ctx, countOverlapsSQL,
		b.RoomID, string(domain.BookingCheckedOut), b.CheckOut.Time, b.CheckIn.Time).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrRoomUnavailable
	}

	if _, err := tx.ExecContext(ctx, insertBookingSQL,
		b.ID, b.Guest, b.RoomID, string(b.Status), b.CheckIn.Time, b.CheckOut.Time, created); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, st domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(st), id)
	if err := affected(res, err); errors.Is(err, domain.ErrNotFound) {
		_, gerr := r.GetBooking(ctx, id)
		return gerr
	} else if err != nil {
		return err
	}
	return nil
}

func (r *Repo) DeleteBooking(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, deleteBookingSQL, id))
}

/********** settings **********/

func (r *Repo) GetSettings(ctx context.Context) (domain.HotelSettings, error) {
	var hs domain.HotelSettings
	err := r.db.QueryRowContext(ctx, getSettingsSQL).Scan(&hs.ID, &hs.Name, &hs.Address, &hs.Phone, &hs.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HotelSettings{}, domain.ErrNotFound
	}
	return hs, err
}

func (r *Repo) UpdateSettings(ctx context.Context, hs domain.HotelSettings) error {
	_, err := r.db.ExecContext(ctx, updateSettingsSQL, hs.Name, hs.Address, hs.Phone, hs.Email, hs.ID)
	return err
}
