package models

import "time"

// User represents a storefront customer (or an admin)
type User struct {
	ID        int64
	Email     string
	PassHash  []byte
	Name      string
	Phone     string
	IsAdmin   bool
	CreatedAt time.Time
}
