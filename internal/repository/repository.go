package repository

import (
	"errors"

	"cms-extensions/internal/db/query"
	"cms-extensions/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("repository: entity not found")

// Events published on utilities.GlobalEventBus with an EntityEvent payload.
const (
	EventEntitySaved   = "entity_saved"
	EventEntityDeleted = "entity_deleted"
)

type EntityEvent struct {
	Table string
	ID    int
}

// Repository is the CRUD surface shared by every table.
type Repository[T model.Identifiable] interface {
	Get(id int) (T, error)
	GetAll() ([]T, error)
	FindAll(filter query.IFilter) ([]T, error)
	FindOne(filter query.IFilter) (T, error)
	SaveOrUpdate(entity *T) error
	Delete(entity T) error
}

// PagedRepository adds 1-based page retrieval.
type PagedRepository[T model.Identifiable] interface {
	Repository[T]
	GetAllPaged(pageIndex, pageSize int, order query.IOrder) (Page[T], error)
	FindAllPaged(pageIndex, pageSize int, filter query.IFilter, order query.IOrder) (Page[T], error)
}

type Page[T any] struct {
	Items        []T `json:"items"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
	PageIndex    int `json:"page_index"`
	PageSize     int `json:"page_size"`
}

func newPage[T any](items []T, total int64, pageIndex, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page[T]{
		Items:        items,
		TotalRecords: int(total),
		TotalPages:   pages,
		PageIndex:    pageIndex,
		PageSize:     pageSize,
	}
}
