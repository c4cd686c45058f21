package repository

import "errors"

var (
	// 対象が見つからない
	ErrNotFound = errors.New("not found")

	// emailのunique制約違反
	ErrDuplicateEmail = errors.New("duplicate email")
)
