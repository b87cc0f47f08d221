package domain

import "time"

type PlaneCategory string

const (
	PlaneCategoryRegional PlaneCategory = "Regional"
	PlaneCategoryMedium   PlaneCategory = "Medium"
	PlaneCategoryLongHaul PlaneCategory = "Long-haul"
)

func (c PlaneCategory) Valid() bool {
	switch c {
	case PlaneCategoryRegional, PlaneCategoryMedium, PlaneCategoryLongHaul:
		return true
	}
	return false
}

type Plane struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Category   PlaneCategory `json:"category"`
	SeatsCount int           `json:"seats_count"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type PlaneInput struct {
	Name       string        `json:"name" validate:"required,min=1,max=100"`
	Category   PlaneCategory `json:"category" validate:"required,oneof=Regional Medium Long-haul"`
	SeatsCount int           `json:"seats_count" validate:"gte=1,lte=1000"`
}
