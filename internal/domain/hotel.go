package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type RoomType string

const (
	RoomStandard RoomType = "Standard"
	RoomDeluxe   RoomType = "Deluxe"
	RoomSuite    RoomType = "Suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomStandard, RoomDeluxe, RoomSuite:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID       string     `json:"id"`
	Number   string     `json:"number"`
	Type     RoomType   `json:"type"`
	Status   RoomStatus `json:"status"`
	Price    float64    `json:"price"`
	Capacity int        `json:"capacity"`
}

// RoomInput is the body of POST /rooms and PUT /rooms/{id}.
type RoomInput struct {
	Number   string     `json:"number"`
	Type     RoomType   `json:"type"`
	Status   RoomStatus `json:"status"`
	Price    float64    `json:"price"`
	Capacity int        `json:"capacity"`
}

type HotelSettings struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// HotelSettingsInput is the body of PUT /hotel/{id}.
type HotelSettingsInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

const (
	dateLayout = "2006-01-02"
	// timestamp without an offset; fractional seconds optional
	localTimestampLayout = "2006-01-02T15:04:05.999999999"
)

// Date is a calendar day. It marshals as YYYY-MM-DD and also accepts RFC 3339
// timestamps or offset-less ones, keeping only the date part.
type Date struct{ time.Time }

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, localTimestampLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// null decodes to ""
	if s == "" {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Nights returns the whole days between two dates (0 when out <= in).
func Nights(in, out Date) int {
	n := int(out.Sub(in.Time).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
