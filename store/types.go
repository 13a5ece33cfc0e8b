// Package store holds the storefront's order model. Prices are integer cents.
package store

import (
	"time"
)

type Customer struct {
	ID       int64
	Email    string
	FullName string
	Address  *string
	Password string
	IsActive bool
}

type Order struct {
	ID        int64
	Customer  Customer
	Status    OrderStatus
	Items     []OrderItem
	OrderedAt time.Time
	Notes     map[string]string
}

// OrderItem snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
