package mysql

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const listRoomsSQL = `
SELECT id, number, type, status, price, capacity
FROM rooms
ORDER BY number, id
`

const getRoomSQL = `
SELECT id, number, type, status, price, capacity
FROM rooms
WHERE id = ?
`

const insertRoomSQL = `
INSERT INTO rooms (id, number, type, status, price, capacity)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms
SET number = ?, type = ?, status = ?, price = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

// b.room is the room number at read time; deleted rooms read as ''.
const selectBookingSQL = `
SELECT
  b.id,
  b.guest,
  b.room_id,
  COALESCE(r.number, ''),
  b.status,
  b.check_in,
  b.check_out,
  b.created_at
FROM bookings b
LEFT JOIN rooms r ON r.id = b.room_id
`

const listBookingsSQL = selectBookingSQL + `ORDER BY b.created_at DESC, b.id`

const getBookingSQL = selectBookingSQL + `WHERE b.id = ?`

const lockRoomSQL = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`

// active bookings of a room whose nights meet [check_in, check_out)
const countOverlapsSQL = `
SELECT COUNT(*)
FROM bookings
WHERE room_id = ? AND status <> ? AND check_in < ? AND check_out > ?
FOR UPDATE
`

const insertBookingSQL = `
INSERT INTO bookings (id, guest, room_id, status, check_in, check_out, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const updateBookingStatusSQL = `
UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

// -----------------------------------------------------------------------------
// HOTEL SETTINGS (single row)
// -----------------------------------------------------------------------------

const getSettingsSQL = `
SELECT id, name, address, phone, email
FROM hotel_settings
ORDER BY id
LIMIT 1
`

const updateSettingsSQL = `
UPDATE hotel_settings
SET name = ?, address = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`
