package domain

import "time"

type ProductType string

const (
	ProductTypeNormal ProductType = "normal"
	ProductType152mm  ProductType = "152mm"
	ProductTypeShared ProductType = "shared"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeNormal, ProductType152mm, ProductTypeShared:
		return true
	}
	return false
}

type Product struct {
	ID        uint
	Name      string
	Detail    string
	Unit      string
	Type      ProductType
	CreatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}
