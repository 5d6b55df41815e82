// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
)

type Handlers struct{ S *app.AdminService }

// problem is the error body. Message is what the console shows.
type problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// MountHandlers registers the admin API under /api.
func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/rooms", h.listRooms)
		r.Post("/rooms", h.createRoom)
		r.Put("/rooms/{id}", h.updateRoom)
		r.Delete("/rooms/{id}", h.deleteRoom)

		r.Get("/bookings", h.listBookings)
		r.Post("/bookings", h.createBooking)
		r.Patch("/bookings/{id}/status", h.updateBookingStatus)
		r.Delete("/bookings/{id}", h.deleteBooking)

		r.Get("/dashboard/stats", h.dashboardStats)

		r.Get("/hotel/settings", h.getSettings)
		r.Put("/hotel/{id}", h.updateSettings)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, msg string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Message: msg}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeErr maps service errors onto HTTP statuses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrInvalid):
		msg := strings.TrimPrefix(err.Error(), domain.ErrInvalid.Error()+": ")
		writeProblem(w, http.StatusBadRequest, "Bad Request", msg)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decode reads a JSON body of at most 1 MiB into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	return true
}

/********** rooms **********/

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.S.ListRooms(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in domain.RoomInput
	if !decode(w, r, &in) {
		return
	}
	room, err := h.S.CreateRoom(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var in domain.RoomInput
	if !decode(w, r, &in) {
		return
	}
	room, err := h.S.UpdateRoom(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/********** bookings **********/

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.S.ListBookings(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingInput
	if !decode(w, r, &in) {
		return
	}
	b, err := h.S.CreateBooking(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingStatusInput
	if !decode(w, r, &in) {
		return
	}
	if err := h.S.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), in.Status); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/********** dashboard & settings **********/

func (h *Handlers) dashboardStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.S.DashboardStats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	hs, err := h.S.GetSettings(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (h *Handlers) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in domain.HotelSettingsInput
	if !decode(w, r, &in) {
		return
	}
	hs, err := h.S.UpdateSettings(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}
