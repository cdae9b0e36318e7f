package repository

import (
	"fmt"

	"cms-extensions/internal/config"
	"cms-extensions/internal/db"
	"cms-extensions/internal/db/query"
	"cms-extensions/internal/model"
	"cms-extensions/utilities"
)

const defaultPageSize = 20

// BaseRepository implements PagedRepository for any table whose rows map onto
// T through gorm's column naming. It always works on the ambient database.
type BaseRepository[T model.Identifiable] struct {
	table      string
	primaryKey string
}

// NewBaseRepository binds T to table. An empty primaryKey means "id".
func NewBaseRepository[T model.Identifiable](table, primaryKey string) *BaseRepository[T] {
	if primaryKey == "" {
		primaryKey = "id"
	}
	return &BaseRepository[T]{table: table, primaryKey: primaryKey}
}

func (r *BaseRepository[T]) Table() string { return r.table }

func (r *BaseRepository[T]) Get(id int) (T, error) {
	return r.FindOne(query.NewFilter().EqualTo(r.primaryKey, id))
}

func (r *BaseRepository[T]) GetAll() ([]T, error) {
	return r.FindAll(nil)
}

func (r *BaseRepository[T]) FindAll(filter query.IFilter) ([]T, error) {
	statement := query.NewQueryBuilder().From(r.table).Where(filter).Build()
	return r.find(statement)
}

func (r *BaseRepository[T]) FindOne(filter query.IFilter) (T, error) {
	var zero T
	statement := query.NewQueryBuilder().From(r.table).Where(filter).Limit(1).Build()
	items, err := r.find(statement)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, ErrNotFound
	}
	return items[0], nil
}

func (r *BaseRepository[T]) GetAllPaged(pageIndex, pageSize int, order query.IOrder) (Page[T], error) {
	return r.FindAllPaged(pageIndex, pageSize, nil, order)
}

// FindAllPaged returns page pageIndex (1-based) of the rows matching filter.
// Without an order, rows are sorted by primary key so pages stay stable.
func (r *BaseRepository[T]) FindAllPaged(pageIndex, pageSize int, filter query.IFilter, order query.IOrder) (Page[T], error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = configuredPageSize()
	}

	qe, err := db.Executor()
	if err != nil {
		return Page[T]{}, err
	}
	total, err := qe.Count(r.table, filter)
	if err != nil {
		return Page[T]{}, fmt.Errorf("repository: count %s: %w", r.table, err)
	}
	if total == 0 {
		return newPage[T](nil, 0, pageIndex, pageSize), nil
	}

	if order == nil || order.ExpressionString() == "" {
		order = query.NewOrder().Asc(r.primaryKey)
	}
	statement := query.NewQueryBuilder().
		From(r.table).
		Where(filter).
		OrderBy(order).
		Limit(pageSize).
		Offset((pageIndex - 1) * pageSize).
		Build()
	items, err := r.find(statement)
	if err != nil {
		return Page[T]{}, err
	}
	return newPage(items, total, pageIndex, pageSize), nil
}

// SaveOrUpdate inserts entity when its key is zero and updates it otherwise.
// The generated key is written back into entity.
func (r *BaseRepository[T]) SaveOrUpdate(entity *T) error {
	conn := db.GetDB()
	if conn == nil {
		return db.ErrNotInitialized
	}
	if err := conn.Table(r.table).Save(entity).Error; err != nil {
		return fmt.Errorf("repository: save %s: %w", r.table, err)
	}

	id := (*entity).GetID()
	utilities.Debug("saved %s %s=%d", r.table, r.primaryKey, id)
	utilities.GlobalEventBus.Publish(EventEntitySaved, EntityEvent{Table: r.table, ID: id})
	return nil
}

func (r *BaseRepository[T]) Delete(entity T) error {
	qe, err := db.Executor()
	if err != nil {
		return err
	}
	id := entity.GetID()
	n, err := qe.Delete(r.table, query.NewFilter().EqualTo(r.primaryKey, id))
	if err != nil {
		return fmt.Errorf("repository: delete %s: %w", r.table, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	utilities.GlobalEventBus.Publish(EventEntityDeleted, EntityEvent{Table: r.table, ID: id})
	return nil
}

// Exists reports whether any row matches filter.
func (r *BaseRepository[T]) Exists(filter query.IFilter) (bool, error) {
	qe, err := db.Executor()
	if err != nil {
		return false, err
	}
	return qe.Exists(r.table, filter)
}

func (r *BaseRepository[T]) find(statement string) ([]T, error) {
	qe, err := db.Executor()
	if err != nil {
		return nil, err
	}
	utilities.Debug("%s", qe.SQL(statement))

	var items []T
	if err := qe.Find(statement, &items); err != nil {
		return nil, fmt.Errorf("repository: query %s: %w", r.table, err)
	}
	return items, nil
}

func configuredPageSize() int {
	if cfg := config.GetConfig(); cfg != nil && cfg.Pagination.PageSize > 0 {
		return cfg.Pagination.PageSize
	}
	return defaultPageSize
}
