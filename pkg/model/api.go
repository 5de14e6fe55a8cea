package model

import "net/url"

// Page is the envelope returned by every list endpoint.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// NewPage builds a Page from a slice of items and the total match count.
func NewPage[T any](items []T, total, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{
		Content:       items,
		TotalElements: total,
		TotalPages:    pages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}

// Filter is implemented by per-resource filter structs. Zero-value fields mean
// "no constraint"; combining set fields is a logical AND on the server side.
type Filter interface {
	Query() url.Values
}

// ListQuery holds the pagination portion of a list request.
type ListQuery struct {
	Page int
	Size int
}

// Clamp enforces limits (size max 100, min 1).
func (q *ListQuery) Clamp() {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Size > 100 {
		q.Size = 100
	}
	if q.Page < 0 {
		q.Page = 0
	}
}
