// shared/models/query.go
package models

import (
	"bytes"
	"cmp"
	"math"
	"strings"
)

// SortField is the closed set of fields a player list can be ordered by.
type SortField int

const (
	SortByScoutPoints SortField = iota
	SortByAge
	SortByName
	SortByPosition
	SortByStatus
)

var sortFieldNames = map[SortField]string{
	SortByScoutPoints: "scoutPoints",
	SortByAge:         "age",
	SortByName:        "name",
	SortByPosition:    "position",
	SortByStatus:      "status",
}

// ParseSortField maps a query parameter value to a SortField.
func ParseSortField(s string) (SortField, bool) {
	for f, name := range sortFieldNames {
		if name == s {
			return f, true
		}
	}
	return 0, false
}

func (f SortField) String() string {
	if name, ok := sortFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Compare orders a and b by the field alone, ascending.
func (f SortField) Compare(a, b *Player) int {
	switch f {
	case SortByAge:
		return cmp.Compare(a.Age, b.Age)
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByPosition:
		return strings.Compare(string(a.Position), string(b.Position))
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	default:
		return cmp.Compare(a.ScoutPoints, b.ScoutPoints)
	}
}

// SortOrder is the list direction.
type SortOrder int

const (
	SortDesc SortOrder = iota
	SortAsc
)

// ParseSortOrder maps "asc"/"desc" to a SortOrder.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch s {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	}
	return 0, false
}

func (o SortOrder) String() string {
	if o == SortAsc {
		return "asc"
	}
	return "desc"
}

// Sort is a field plus direction. Ties always fall back to ascending id.
type Sort struct {
	Field SortField
	Order SortOrder
}

// Compare applies the sort direction to the field and breaks ties by id.
func (s Sort) Compare(a, b *Player) int {
	c := s.Field.Compare(a, b)
	if s.Order == SortDesc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// PlayerFilter constrains a list by equality. Nil fields match everything.
type PlayerFilter struct {
	Position *Position
	Status   *Status
}

// Matches reports whether p satisfies every set constraint.
func (f PlayerFilter) Matches(p *Player) bool {
	if f.Position != nil && p.Position != *f.Position {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	return true
}

// List defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PlayerQuery is a validated list request.
type PlayerQuery struct {
	Filter PlayerFilter
	Sort   Sort
	Page   int
	Limit  int
}

// DefaultPlayerQuery returns the query used when no parameters are supplied.
func DefaultPlayerQuery() PlayerQuery {
	return PlayerQuery{
		Sort:  Sort{Field: SortByScoutPoints, Order: SortDesc},
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Skip is the number of matching records before the requested page. It
// saturates at math.MaxInt64 instead of overflowing, so a page far past the
// end still reads as past the end.
func (q PlayerQuery) Skip() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// PlayerPage is one page of a list result.
type PlayerPage struct {
	Items []Player
	Total int64
	Page  int
	Limit int
}

// Count is the number of items on this page.
func (p *PlayerPage) Count() int {
	return len(p.Items)
}

// Pages is ceil(total/limit).
func (p *PlayerPage) Pages() int64 {
	if p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (p.Total + limit - 1) / limit
}

// Pagination describes where a list page sits.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// PlayerListResponse is the wire form of a PlayerPage.
type PlayerListResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
	Data       []Player   `json:"data"`
}

// Response builds the list envelope for p.
func (p *PlayerPage) Response() PlayerListResponse {
	items := p.Items
	if items == nil {
		items = []Player{}
	}
	return PlayerListResponse{
		Success: true,
		Count:   len(items),
		Total:   p.Total,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Pages: p.Pages(),
		},
		Data: items,
	}
}
