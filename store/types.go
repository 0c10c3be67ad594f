package store

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// 1. Person is a customer: an address, a friend (graphs may be cyclic) and an order history.
// Orders are encapsulated and only reachable through methods.
type Person struct {
	ID        uuid.UUID         `json:"id" merge:",key"`
	Name      string            `json:"name"`
	NickNames []string          `json:"nickNames"`
	Address   *Address          `json:"address"`
	Friend    *Person           `json:"friend"`
	Tags      map[string]string `json:"tags"`

	// Tenant is shared by every person of a deployment.
	Tenant    string    `json:"tenant" merge:",static"`
	CreatedAt time.Time `json:"createdAt" merge:",readonly"`
	Revision  int       `json:"-"`

	active bool
	orders []*Order
}

// 2. Address is a postal address, merged attribute by attribute.
type Address struct {
	Line string `json:"line"`
	City string `json:"city"`
	Zip  string `json:"zip"`
}

// 3. Order is a purchase; orders of two persons are the same order when their IDs match.
type Order struct {
	ID          int64       `json:"id" merge:",key"`
	Amount      float64     `json:"amount"`
	Status      OrderStatus `json:"status"`
	PurchasedOn time.Time   `json:"purchasedOn"`
	Items       []*Item     `json:"items"`

	// Person points back to the buyer.
	Person *Person `json:"-"`
}

// 4. Item is a line of an order.
type Item struct {
	ID         int64             `json:"id" merge:",key"`
	Name       string            `json:"name"`
	PriceCents int64             `json:"priceCents"`
	Attributes map[string]string `json:"attributes"`
}

// 5. OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// IsValid reports whether the status is one of the known values. The empty status is valid.
func (s OrderStatus) IsValid() bool {
	switch s {
	case "", StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}

	return false
}

func (p *Person) IsActive() bool {
	return p.active
}

func (p *Person) SetActive(active bool) {
	p.active = active
}

// Orders returns the order history; the slice is shared with the person.
func (p *Person) Orders() []*Order {
	return p.orders
}

func (p *Person) SetOrders(orders []*Order) {
	p.orders = orders
}

// AddOrder appends orders and points them back to the person.
func (p *Person) AddOrder(orders ...*Order) {
	for _, o := range orders {
		if o == nil {
			continue
		}

		o.Person = p
		p.orders = append(p.orders, o)
	}
}

// RemoveOrder removes every order equal to o.
func (p *Person) RemoveOrder(o *Order) {
	p.orders = slices.DeleteFunc(p.orders, func(existing *Order) bool {
		return existing.Equal(o)
	})
}

// Equal reports whether both orders have the same ID.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}

	return o.ID == other.ID
}
