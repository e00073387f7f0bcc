package model

import "fmt"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Page * Size far from overflowing.
	MaxPage = 10000
)

// Pageable describes the requested slice of a result set. Page is zero based.
type Pageable struct {
	Page      int    `form:"page" binding:"gte=0,lte=10000"`
	Size      int    `form:"size" binding:"gte=0,lte=100"`
	Sort      string `form:"sort" binding:"omitempty,oneOf=startsAt endsAt createdAt name"`
	Direction string `form:"direction" binding:"omitempty,oneOf=asc desc ASC DESC"`
}

var sortColumns = map[string]string{
	"startsAt":  "starts_at",
	"endsAt":    "ends_at",
	"createdAt": "created_at",
	"name":      "name",
}

// Normalize applies defaults to unset fields and clamps the page and size.
func (p Pageable) Normalize() Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "startsAt"
	}
	if p.Direction != "desc" && p.Direction != "DESC" {
		p.Direction = "asc"
	} else {
		p.Direction = "desc"
	}
	return p
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// OrderBy returns the SQL order clause for the events table. Only whitelisted columns are ever returned.
func (p Pageable) OrderBy() string {
	n := p.Normalize()
	return fmt.Sprintf("events.%s %s", sortColumns[n.Sort], n.Direction)
}

// Page is a slice of a result set together with the information needed to fetch the rest of it.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	p := pageable.Normalize()
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
