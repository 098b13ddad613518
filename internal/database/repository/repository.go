// Package repository provides a generic gorm-backed repository shared by every
// catalog entity, plus a small typed query builder.
//
// A Repository is bound to whatever *gorm.DB it is built from. Build it from a
// transaction handle to make its calls part of that transaction:
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//		authors := repository.New[entities.Author](tx)
//		author, err := authors.Get(ctx, id)
//		...
//	})
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Repository handles create/read/delete for a single table mapped by T.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository for T on the given connection or transaction.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Create inserts record and fills in its generated primary key.
func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Get loads the record with the given primary key.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// All returns every record in storage order.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	return r.List(ctx, Query{})
}

// List returns the records matching q.
func (r *Repository[T]) List(ctx context.Context, q Query) ([]T, error) {
	records := make([]T, 0)
	err := r.model(ctx).Scopes(q.Scope()).Find(&records).Error
	return records, err
}

// Scan runs q against T's table and scans the selected columns into dest,
// which must be a pointer to a slice of projection structs.
func (r *Repository[T]) Scan(ctx context.Context, q Query, dest any) error {
	return r.model(ctx).Scopes(q.Scope()).Scan(dest).Error
}

// Exists reports whether at least one record matches q.
func (r *Repository[T]) Exists(ctx context.Context, q Query) (bool, error) {
	var count int64
	err := r.model(ctx).Scopes(q.Scope()).Count(&count).Error
	return count > 0, err
}

// Delete removes the record with the given primary key.
// It reports false without error when there was nothing to delete.
func (r *Repository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository[T]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}
