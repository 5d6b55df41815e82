// internal/adapters/hotelapi/client.go
package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/adapters/observability"
	"hotel_admin/internal/domain"
)

// DefaultBaseURL is used when HOTEL_API_URL is not set.
const DefaultBaseURL = "http://localhost:5188/api"

// Client is a thin JSON client for the hotel admin API. Every call is a single
// round trip: no retries, no caching, and no timeout beyond the caller's context.
type Client struct {
	base string
	hc   *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (default has no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.base }

var _ domain.AdminAPI = (*Client)(nil)

// ---- Rooms ----

func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	_, err := c.do(ctx, call{res: "rooms", op: "list", method: http.MethodGet, path: "/rooms",
		fail: "Failed to fetch rooms"}, &out)
	return out, err
}

func (c *Client) CreateRoom(ctx context.Context, in domain.RoomInput) (domain.Room, error) {
	var out domain.Room
	_, err := c.do(ctx, call{res: "rooms", op: "create", method: http.MethodPost, path: "/rooms",
		body: in, fail: "Failed to create room"}, &out)
	return out, err
}

// UpdateRoom returns nil when the server answers 204.
func (c *Client) UpdateRoom(ctx context.Context, id string, in domain.RoomInput) (*domain.Room, error) {
	return optional[domain.Room](ctx, c, call{res: "rooms", op: "update", method: http.MethodPut,
		path: "/rooms/" + url.PathEscape(id), body: in, fail: "Failed to update room"})
}

func (c *Client) DeleteRoom(ctx context.Context, id string) (*domain.Room, error) {
	return optional[domain.Room](ctx, c, call{res: "rooms", op: "delete", method: http.MethodDelete,
		path: "/rooms/" + url.PathEscape(id), fail: "Failed to delete room"})
}

// ---- Bookings ----

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	_, err := c.do(ctx, call{res: "bookings", op: "list", method: http.MethodGet, path: "/bookings",
		fail: "Failed to fetch bookings"}, &out)
	return out, err
}

// CreateBooking surfaces the server's message (e.g. "Room not available") when
// the error body carries one.
func (c *Client) CreateBooking(ctx context.Context, in domain.BookingInput) (domain.Booking, error) {
	var out domain.Booking
	_, err := c.do(ctx, call{res: "bookings", op: "create", method: http.MethodPost, path: "/bookings",
		body: in, fail: "Failed to create booking", serverMsg: true}, &out)
	return out, err
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, st domain.BookingStatus) (*domain.Booking, error) {
	return optional[domain.Booking](ctx, c, call{res: "bookings", op: "update_status", method: http.MethodPatch,
		path: "/bookings/" + url.PathEscape(id) + "/status", body: domain.BookingStatusInput{Status: st},
		fail: "Failed to update booking status"})
}

func (c *Client) DeleteBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return optional[domain.Booking](ctx, c, call{res: "bookings", op: "delete", method: http.MethodDelete,
		path: "/bookings/" + url.PathEscape(id), fail: "Failed to delete booking"})
}

// ---- Dashboard ----

func (c *Client) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	_, err := c.do(ctx, call{res: "dashboard", op: "stats", method: http.MethodGet, path: "/dashboard/stats",
		fail: "Failed to fetch dashboard stats"}, &out)
	return out, err
}

// ---- Hotel settings ----

func (c *Client) GetHotelSettings(ctx context.Context) (domain.HotelSettings, error) {
	var out domain.HotelSettings
	_, err := c.do(ctx, call{res: "hotel", op: "get", method: http.MethodGet, path: "/hotel/settings",
		fail: "Failed to fetch hotel settings"}, &out)
	return out, err
}

func (c *Client) UpdateHotelSettings(ctx context.Context, id string, in domain.HotelSettingsInput) (*domain.HotelSettings, error) {
	return optional[domain.HotelSettings](ctx, c, call{res: "hotel", op: "update", method: http.MethodPut,
		path: "/hotel/" + url.PathEscape(id), body: in, fail: "Failed to update hotel settings"})
}

// ---- Internals ----

// ErrRequestFailed matches every *RequestError via errors.Is.
var ErrRequestFailed = errors.New("hotelapi: request failed")

// RequestError is the only error kind the client returns. Message is meant for
// the operator; Err holds the transport or decode error when there is one.
type RequestError struct {
	Resource string
	Op       string
	Status   int // 0 when no response was received
	Message  string
	Err      error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

type call struct {
	res, op      string
	method, path string
	body         any
	fail         string
	serverMsg    bool // use the {"message": ...} of an error body when present
}

// optional is do for endpoints that may answer 204: no content yields nil, not
// a pointer to a zero value.
func optional[T any](ctx context.Context, c *Client, cl call) (*T, error) {
	var out T
	empty, err := c.do(ctx, cl, &out)
	if err != nil || empty {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes a 2xx JSON body into out. It reports
// empty=true, leaving out untouched, when the server answered 204.
func (c *Client) do(ctx context.Context, cl call, out any) (empty bool, err error) {
	var rdr io.Reader
	if cl.body != nil {
		b, merr := json.Marshal(cl.body)
		if merr != nil {
			return false, c.fail(cl, 0, "", merr)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.base+cl.path, rdr)
	if err != nil {
		return false, c.fail(cl, 0, "", err)
	}
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveAPICall(cl.res, cl.op, 0, time.Since(start))
		return false, c.fail(cl, 0, "", err)
	}
	defer resp.Body.Close()
	observability.ObserveAPICall(cl.res, cl.op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for the server message and diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := ""
		if cl.serverMsg {
			msg = serverMessage(b)
		}
		return false, c.fail(cl, resp.StatusCode, msg,
			fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	if resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, c.fail(cl, resp.StatusCode, "", fmt.Errorf("decode %s: %w", cl.path, err))
	}
	return false, nil
}

func (c *Client) fail(cl call, status int, msg string, err error) error {
	if msg == "" {
		msg = cl.fail
	}
	log.Debug().
		Str("resource", cl.res).
		Str("op", cl.op).
		Int("status", status).
		Err(err).
		Msg("api call failed")
	return &RequestError{Resource: cl.res, Op: cl.op, Status: status, Message: msg, Err: err}
}

// serverMessage extracts a non-empty string "message" field from b.
func serverMessage(b []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	s, _ := body.Message.(string)
	return s
}
