package mysql

import (
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"

	"hotel_admin/internal/domain"
)

func TestRoomNumberErr(t *testing.T) {
	dup := &driver.MySQLError{Number: erDupEntry, Message: "Duplicate entry '101' for key 'rooms.uq_rooms_number'"}

	if err := roomNumberErr(fmt.Errorf("exec: %w", dup)); !errors.Is(err, domain.ErrDuplicateRoomNumber) {
		t.Fatalf("duplicate key: got %v", err)
	}
	if err := roomNumberErr(dup); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("duplicate number should be an invalid input, got %v", err)
	}

	other := &driver.MySQLError{Number: 1213, Message: "Deadlock found"}
	if err := roomNumberErr(other); err != other {
		t.Fatalf("other errors pass through, got %v", err)
	}
	if err := roomNumberErr(nil); err != nil {
		t.Fatalf("nil: got %v", err)
	}
}
