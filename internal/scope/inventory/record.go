// Package inventory models inventory records and the query service that
// filters raw inventory lines by a search term.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord is returned when a record cannot be written as a single line
var ErrInvalidRecord = errors.New("invalid inventory record")

// Record is one inventory entry: "particulars,quantity"
type Record struct {
	Particulars string `json:"particulars"`
	Quantity    string `json:"quantity"`
}

// ParseLine splits line on its first comma.
// It returns false when the line has no comma.
func ParseLine(line string) (Record, bool) {
	particulars, quantity, ok := strings.Cut(line, ",")
	if !ok {
		return Record{}, false
	}
	return Record{Particulars: particulars, Quantity: quantity}, true
}

// KeyOf returns the particulars of a stored line, which is the whole line
// when it has no comma. Delete and update match against this key.
func KeyOf(line string) string {
	particulars, _, _ := strings.Cut(line, ",")
	return particulars
}

// Line formats the record as it is stored
func (r Record) Line() string {
	return r.Particulars + "," + r.Quantity
}

// Validate checks that the record round-trips through ParseLine
func (r Record) Validate() error {
	if r.Particulars == "" {
		return fmt.Errorf("%w: particulars is required", ErrInvalidRecord)
	}
	if strings.Contains(r.Particulars, ",") {
		return fmt.Errorf("%w: particulars must not contain a comma", ErrInvalidRecord)
	}
	if strings.ContainsAny(r.Particulars, "\r\n") || strings.ContainsAny(r.Quantity, "\r\n") {
		return fmt.Errorf("%w: fields must not contain line breaks", ErrInvalidRecord)
	}
	return nil
}
