package repository

import (
	"errors"

	"gorm.io/gorm"
)

// pageScope LIMIT/OFFSET for a 1-based page; a non-positive size leaves the query unbounded
func pageScope(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if size <= 0 {
			return db
		}
		return db.Limit(size).Offset(max(page-1, 0) * size)
	}
}

// firstOrNil a missing row is (nil, nil), not an error
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
