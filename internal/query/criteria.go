// Package query defines player list criteria, ordering and paging, and
// evaluates them in-process for backends without a native query language.
package query

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mcoot/rpgroster/internal/model"
)

// Criteria is an open set of optional player filters. Nil fields impose no constraint.
// All supplied filters combine with AND.
type Criteria struct {
	Name       *string // substring
	Title      *string // substring
	Race       *model.Race
	Profession *model.Profession

	// After and Before bound the birthday inclusively.
	// The range applies only when both are set.
	After  *time.Time
	Before *time.Time

	Banned *bool

	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// BirthdayRange returns the inclusive birthday bounds and whether they apply
func (c Criteria) BirthdayRange() (after, before time.Time, ok bool) {
	if c.After == nil || c.Before == nil {
		return time.Time{}, time.Time{}, false
	}
	return *c.After, *c.Before, true
}

// Order is the sort key for a listing
type Order string

const (
	OrderID         Order = "ID"
	OrderName       Order = "NAME"
	OrderExperience Order = "EXPERIENCE"
	OrderBirthday   Order = "BIRTHDAY"
	OrderLevel      Order = "LEVEL"
)

// ParseOrder converts an order name (case-insensitive) to an Order.
// An empty string yields OrderID.
func ParseOrder(s string) (Order, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return OrderID, nil
	}
	switch o := Order(s); o {
	case OrderID, OrderName, OrderExperience, OrderBirthday, OrderLevel:
		return o, nil
	}
	return "", model.InvalidField("order", fmt.Sprintf("%q is not a supported sort key", s))
}

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// Page selects a zero-based page of a result set
type Page struct {
	Number int
	Size   int
}

// DefaultPage returns the first page with the default size
func DefaultPage() Page {
	return Page{Number: DefaultPageNumber, Size: DefaultPageSize}
}

// Validate checks the page number is non-negative and the size positive
func (p Page) Validate() error {
	if p.Number < 0 {
		return model.InvalidField("pageNumber", "must not be negative")
	}
	if p.Size <= 0 {
		return model.InvalidField("pageSize", "must be greater than zero")
	}
	return nil
}

// Offset returns the number of records preceding the page. It saturates at
// math.MaxInt so a huge page number always lands past the end.
func (p Page) Offset() int {
	if p.Size > 0 && p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// Query is a complete listing request
type Query struct {
	Criteria Criteria
	Order    Order
	Page     Page
}

// New returns a query with default ordering and paging
func New(c Criteria) Query {
	return Query{Criteria: c, Order: OrderID, Page: DefaultPage()}
}

// Validate checks the ordering and paging parameters
func (q Query) Validate() error {
	if _, err := ParseOrder(string(q.Order)); err != nil {
		return err
	}
	return q.Page.Validate()
}
