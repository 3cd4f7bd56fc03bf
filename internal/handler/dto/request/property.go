package request

import (
	"strings"

	"realty-api/internal/domain/property"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type" binding:"required"`
	PriceCents   int64    `json:"price_cents" binding:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"gte=0"`
	Parking      int      `json:"parking" binding:"gte=0"`
	LandSizeSqm  *float64 `json:"land_size_sqm,omitempty"`
	Street       string   `json:"street" binding:"required"`
	Suburb       string   `json:"suburb" binding:"required"`
	State        string   `json:"state" binding:"required"`
	Postcode     string   `json:"postcode" binding:"required"`
	Images       []string `json:"images,omitempty" binding:"omitempty,dive,url"`
	Features     []string `json:"features,omitempty"`
}

func (r *CreatePropertyRequest) ToDomain(ownerID uuid.UUID) (*property.Property, error) {
	propertyType, err := property.NewType(r.PropertyType)
	if err != nil {
		return nil, err
	}
	return property.NewProperty(property.NewPropertyParams{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		PropertyType: propertyType,
		PriceCents:   r.PriceCents,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Parking:      r.Parking,
		LandSizeSqm:  r.LandSizeSqm,
		Street:       r.Street,
		Suburb:       r.Suburb,
		State:        strings.ToUpper(r.State),
		Postcode:     r.Postcode,
	})
}

type UpdatePropertyRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type" binding:"required"`
	Status       string   `json:"status" binding:"required"`
	PriceCents   int64    `json:"price_cents" binding:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"gte=0"`
	Parking      int      `json:"parking" binding:"gte=0"`
	LandSizeSqm  *float64 `json:"land_size_sqm,omitempty"`
	Street       string   `json:"street" binding:"required"`
	Suburb       string   `json:"suburb" binding:"required"`
	State        string   `json:"state" binding:"required"`
	Postcode     string   `json:"postcode" binding:"required"`
	Images       []string `json:"images,omitempty" binding:"omitempty,dive,url"`
	Features     []string `json:"features,omitempty"`
}

func (r *UpdatePropertyRequest) ToParams() (shared.UpdatePropertyParams, error) {
	propertyType, err := property.NewType(r.PropertyType)
	if err != nil {
		return shared.UpdatePropertyParams{}, err
	}
	status, err := property.NewStatus(r.Status)
	if err != nil {
		return shared.UpdatePropertyParams{}, err
	}
	return shared.UpdatePropertyParams{
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		PropertyType: propertyType,
		Status:       status,
		PriceCents:   r.PriceCents,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Parking:      r.Parking,
		LandSizeSqm:  r.LandSizeSqm,
		Street:       r.Street,
		Suburb:       r.Suburb,
		State:        strings.ToUpper(r.State),
		Postcode:     r.Postcode,
	}, nil
}

type UpsertReportRequest struct {
	ReportType  string `json:"report_type" binding:"required,oneof=inspection strata pest"`
	DocumentURL string `json:"document_url" binding:"required,url"`
}
