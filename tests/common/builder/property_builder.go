//go:build unit || e2e

package builder

import (
	"time"

	"realty-api/internal/domain/property"
	reqdto "realty-api/internal/handler/dto/request"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type PropertyBuilder struct {
	OwnerID      uuid.UUID
	Title        string
	Slug         string
	PropertyType string
	Status       string
	PriceCents   int64
	Bedrooms     int
	Street       string
	Suburb       string
	State        string
	Postcode     string
}

func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		OwnerID:      uuid.New(),
		Title:        "Sunny Three Bedroom Cottage",
		Slug:         "sunny-three-bedroom-cottage-abc123",
		PropertyType: "house",
		Status:       "available",
		PriceCents:   85_000_000,
		Bedrooms:     3,
		Street:       "12 Wattle St",
		Suburb:       "Newtown",
		State:        "NSW",
		Postcode:     "2042",
	}
}

func (p *PropertyBuilder) With(mutate func(*PropertyBuilder)) *PropertyBuilder {
	mutate(p)
	return p
}

func (p *PropertyBuilder) BuildDomain() (*property.Property, error) {
	propType, err := property.NewType(p.PropertyType)
	if err != nil {
		return nil, err
	}
	return property.NewProperty(property.NewPropertyParams{
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		PropertyType: propType,
		PriceCents:   p.PriceCents,
		Bedrooms:     p.Bedrooms,
		Street:       p.Street,
		Suburb:       p.Suburb,
		State:        p.State,
		Postcode:     p.Postcode,
	})
}

func (p *PropertyBuilder) BuildCreateDTO() reqdto.CreatePropertyRequest {
	return reqdto.CreatePropertyRequest{
		Title:        p.Title,
		PropertyType: p.PropertyType,
		PriceCents:   p.PriceCents,
		Bedrooms:     p.Bedrooms,
		Street:       p.Street,
		Suburb:       p.Suburb,
		State:        p.State,
		Postcode:     p.Postcode,
	}
}

func (p *PropertyBuilder) BuildSnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:         uuid.New(),
		OwnerID:    p.OwnerID,
		Slug:       p.Slug,
		Title:      p.Title,
		Status:     p.Status,
		PriceCents: p.PriceCents,
	}
}

func (p *PropertyBuilder) BuildDetailView() *queries.PropertyDetailView {
	now := time.Now()
	return &queries.PropertyDetailView{
		ID:           uuid.New(),
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Slug:         p.Slug,
		PropertyType: p.PropertyType,
		Status:       p.Status,
		PriceCents:   p.PriceCents,
		Bedrooms:     p.Bedrooms,
		Street:       p.Street,
		Suburb:       p.Suburb,
		State:        p.State,
		Postcode:     p.Postcode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
