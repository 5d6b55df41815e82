package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
)

func (c *console) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

/********** dashboard **********/

// dashboard loads stats and the hotel name side by side.
func (c *console) dashboard(ctx context.Context) error {
	dash := app.NewDashboardPage(c.api, c.notify)
	settings := app.NewSettingsPage(c.api, c.notify)

	var g errgroup.Group
	g.Go(func() error { return dash.Load(ctx) })
	g.Go(func() error {
		// the header is optional; its failure was already reported
		_ = settings.Load(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if hs := settings.Hotel(); hs != nil {
		fmt.Fprintf(c.out, "%s\n\n", hs.Name)
	}
	if dash.Empty() {
		fmt.Fprintln(c.out, "No data available")
		return nil
	}

	tw := c.table()
	for _, card := range dash.Cards() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", card.Title, card.Value, card.Description, card.Trend)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\nRecent Bookings")
	return c.bookingRows(dash.RecentBookings())
}

/********** rooms **********/

func (c *console) rooms(rooms []domain.Room) error {
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNUMBER\tTYPE\tSTATUS\tPRICE\tCAPACITY")
	for _, r := range rooms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s (%s)\t%.2f\t%d\n",
			r.ID, r.Number, r.Type, r.Status, app.StatusTone(r.Status), r.Price, r.Capacity)
	}
	return tw.Flush()
}

func (c *console) roomsList(ctx context.Context) error {
	p := app.NewRoomsPage(c.api, c.notify)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.rooms(p.Rooms)
}

// roomFlags binds the room form fields onto fs.
func roomFlags(fs *flag.FlagSet, f *app.RoomForm) {
	fs.StringVar(&f.Number, "number", f.Number, "room number")
	fs.Func("type", "Standard, Deluxe or Suite", func(v string) error {
		f.Type = domain.RoomType(v)
		return nil
	})
	fs.Func("status", "available, occupied or maintenance", func(v string) error {
		f.Status = domain.RoomStatus(v)
		return nil
	})
	fs.Float64Var(&f.Price, "price", f.Price, "nightly price")
	fs.IntVar(&f.Capacity, "capacity", f.Capacity, "guests")
}

func (c *console) roomsAdd(ctx context.Context, args []string) error {
	p := app.NewRoomsPage(c.api, c.notify)
	fs := flags("rooms add")
	roomFlags(fs, &p.Form)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := p.Add(ctx); err != nil {
		return err
	}
	return c.rooms(p.Rooms)
}

// roomsUpdate starts from the current room and applies only the given flags.
func (c *console) roomsUpdate(ctx context.Context, args []string) error {
	fs := flags("rooms update")
	id := fs.String("id", "", "room id")
	var patch app.RoomForm
	roomFlags(fs, &patch)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}

	p := app.NewRoomsPage(c.api, c.notify)
	if err := p.Load(ctx); err != nil {
		return err
	}
	var current *domain.Room
	for i := range p.Rooms {
		if p.Rooms[i].ID == *id {
			current = &p.Rooms[i]
		}
	}
	if current != nil {
		p.Form = app.FormFromRoom(*current)
	}
	set := visited(fs)
	if set["number"] {
		p.Form.Number = patch.Number
	}
	if set["type"] {
		p.Form.Type = patch.Type
	}
	if set["status"] {
		p.Form.Status = patch.Status
	}
	if set["price"] {
		p.Form.Price = patch.Price
	}
	if set["capacity"] {
		p.Form.Capacity = patch.Capacity
	}

	if err := p.Update(ctx, *id); err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	return c.rooms([]domain.Room{*current})
}

func (c *console) roomsDelete(ctx context.Context, args []string) error {
	fs := flags("rooms delete")
	id := fs.String("id", "", "room id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}
	return app.NewRoomsPage(c.api, c.notify).Delete(ctx, *id)
}

/********** bookings **********/

func (c *console) bookingRows(rows []app.BookingRow) error {
	tw := c.table()
	fmt.Fprintln(tw, "ID\tGUEST\tROOM\tSTATUS\tCHECK-IN\tCHECK-OUT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Guest, r.Room, r.Status, r.CheckIn, r.CheckOut)
	}
	return tw.Flush()
}

func (c *console) bookingsList(ctx context.Context) error {
	p := app.NewBookingsPage(c.api, c.notify)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.bookingRows(p.Rows())
}

// dateFlag parses YYYY-MM-DD into d.
func dateFlag(d *domain.Date) func(string) error {
	return func(v string) error {
		parsed, err := domain.ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
}

func (c *console) bookingsAdd(ctx context.Context, args []string) error {
	var in domain.BookingInput
	fs := flags("bookings add")
	fs.StringVar(&in.Guest, "guest", "", "guest name")
	fs.StringVar(&in.RoomID, "room", "", "room id")
	fs.Func("in", "check-in date (YYYY-MM-DD)", dateFlag(&in.CheckIn))
	fs.Func("out", "check-out date (YYYY-MM-DD)", dateFlag(&in.CheckOut))
	fs.Func("status", "reserved or checked-in", func(v string) error {
		in.Status = domain.BookingStatus(v)
		return nil
	})
	if err := parse(fs, args); err != nil {
		return err
	}

	p := app.NewBookingsPage(c.api, c.notify)
	if err := p.Create(ctx, in); err != nil {
		return err
	}
	return c.bookingRows(p.Rows())
}

func (c *console) bookingsStatus(ctx context.Context, args []string) error {
	fs := flags("bookings status")
	id := fs.String("id", "", "booking id")
	to := fs.String("to", "", "reserved, checked-in or checked-out")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}
	st := domain.BookingStatus(*to)
	if !st.Valid() {
		return fmt.Errorf("%w: bookings status: unknown status %q", errUsage, *to)
	}
	return app.NewBookingsPage(c.api, c.notify).ChangeStatus(ctx, *id, st)
}

func (c *console) bookingsDelete(ctx context.Context, args []string) error {
	fs := flags("bookings delete")
	id := fs.String("id", "", "booking id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}
	return app.NewBookingsPage(c.api, c.notify).Delete(ctx, *id)
}

/********** settings **********/

func (c *console) settings(hs *domain.HotelSettings) error {
	tw := c.table()
	fmt.Fprintf(tw, "ID\t%s\n", hs.ID)
	fmt.Fprintf(tw, "Name\t%s\n", hs.Name)
	fmt.Fprintf(tw, "Address\t%s\n", hs.Address)
	fmt.Fprintf(tw, "Phone\t%s\n", hs.Phone)
	fmt.Fprintf(tw, "Email\t%s\n", hs.Email)
	return tw.Flush()
}

func (c *console) settingsShow(ctx context.Context) error {
	p := app.NewSettingsPage(c.api, c.notify)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.settings(p.Hotel())
}

func (c *console) settingsUpdate(ctx context.Context, args []string) error {
	var patch domain.HotelSettingsInput
	fs := flags("settings update")
	fs.StringVar(&patch.Name, "name", "", "hotel name")
	fs.StringVar(&patch.Address, "address", "", "street address")
	fs.StringVar(&patch.Phone, "phone", "", "phone number")
	fs.StringVar(&patch.Email, "email", "", "contact email")
	if err := parse(fs, args); err != nil {
		return err
	}

	p := app.NewSettingsPage(c.api, c.notify)
	if err := p.Load(ctx); err != nil {
		return err
	}
	set := visited(fs)
	if set["name"] {
		p.Form.Name = patch.Name
	}
	if set["address"] {
		p.Form.Address = patch.Address
	}
	if set["phone"] {
		p.Form.Phone = patch.Phone
	}
	if set["email"] {
		p.Form.Email = patch.Email
	}
	if err := p.Save(ctx); err != nil {
		return err
	}
	return c.settings(p.Hotel())
}
