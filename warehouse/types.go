// Package warehouse holds the fulfilment view of an order.
package warehouse

type Customer struct {
	ID      uint64
	Name    string
	Email   string
	Address string
}

type Order struct {
	ID       uint64
	Customer *Customer
	Status   string
	Lines    []Line
	PlacedAt int64 // Unix milliseconds
	Notes    map[string]string
	Picked   bool
}

type Line struct {
	ProductID uint64
	Name      string
	Quantity  int32
	UnitPrice float64
}
