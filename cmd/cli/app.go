package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dsjohal14/stockroom/internal/report"
	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/rs/zerolog"
)

// User-facing messages
const (
	msgAdded       = "Item added to inventory."
	msgDeleted     = "Item deleted from inventory."
	msgUpgraded    = "Item upgraded in inventory."
	msgUnavailable = "Error: Unable to open inventory file."
)

// reportedError marks an error whose message was already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// app holds what every command needs once the store is open
type app struct {
	store  db.Storage
	query  *inventory.Service
	logger zerolog.Logger
	out    io.Writer
	color  bool
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) say(msg, color string) {
	fmt.Fprintln(a.out, report.Paint(msg, color, a.color))
}

// fail prints the user-facing message for err and returns it as reported
func (a *app) fail(err error) error {
	switch {
	case errors.Is(err, db.ErrUnavailable):
		a.say(msgUnavailable, report.ColorRed)
	case errors.Is(err, db.ErrNotFound):
		a.say(report.NotFoundMessage, report.ColorRed)
	case errors.Is(err, inventory.ErrInvalidRecord):
		a.say(err.Error(), report.ColorRed)
	default:
		return err
	}
	return &reportedError{err: err}
}

func (a *app) search(ctx context.Context, term string) error {
	lines, err := a.store.Lines(ctx)
	if err != nil {
		return a.fail(err)
	}

	res, err := a.query.Query(ctx, lines, term)
	if err != nil {
		return err
	}
	return report.Table(a.out, res.Records, report.Options{Color: a.color})
}

func (a *app) list(ctx context.Context) error {
	records, err := a.store.Records(ctx)
	if err != nil {
		return a.fail(err)
	}
	return report.Table(a.out, records, report.Options{Color: a.color})
}

func (a *app) add(ctx context.Context, particulars, quantity string) error {
	rec := inventory.Record{Particulars: particulars, Quantity: quantity}
	if err := a.store.Add(ctx, rec); err != nil {
		return a.fail(err)
	}
	a.logger.Debug().Str("particulars", particulars).Msg("item added")
	a.say(msgAdded, report.ColorGreen)
	return nil
}

func (a *app) delete(ctx context.Context, particulars string) error {
	if err := a.store.Delete(ctx, particulars); err != nil {
		return a.fail(err)
	}
	a.logger.Debug().Str("particulars", particulars).Msg("item deleted")
	a.say(msgDeleted, report.ColorGreen)
	return nil
}

func (a *app) update(ctx context.Context, particulars, quantity string) error {
	if err := a.store.Update(ctx, particulars, quantity); err != nil {
		return a.fail(err)
	}
	a.logger.Debug().Str("particulars", particulars).Str("quantity", quantity).Msg("item upgraded")
	a.say(msgUpgraded, report.ColorGreen)
	return nil
}
