package property

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	title        string
	slug         string
	description  string
	propertyType Type
	status       Status
	priceCents   int64
	bedrooms     int
	bathrooms    int
	parking      int
	landSizeSqm  *float64
	street       string
	suburb       string
	state        string
	postcode     string
	isFeatured   bool
	viewsCount   int64
	createdAt    time.Time
	updatedAt    time.Time
}

type NewPropertyParams struct {
	OwnerID      uuid.UUID
	Title        string
	Description  string
	PropertyType Type
	PriceCents   int64
	Bedrooms     int
	Bathrooms    int
	Parking      int
	LandSizeSqm  *float64
	Street       string
	Suburb       string
	State        string
	Postcode     string
}

func NewProperty(p NewPropertyParams) (*Property, error) {
	if p.Title == "" {
		return nil, ErrEmptyTitle
	}
	if !p.PropertyType.IsValid() {
		return nil, ErrInvalidPropertyType
	}
	if p.PriceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	return &Property{
		id:           uuid.New(),
		ownerID:      p.OwnerID,
		title:        p.Title,
		slug:         NewSlug(p.Title),
		description:  p.Description,
		propertyType: p.PropertyType,
		status:       StatusAvailable,
		priceCents:   p.PriceCents,
		bedrooms:     p.Bedrooms,
		bathrooms:    p.Bathrooms,
		parking:      p.Parking,
		landSizeSqm:  p.LandSizeSqm,
		street:       p.Street,
		suburb:       p.Suburb,
		state:        p.State,
		postcode:     p.Postcode,
	}, nil
}

func (p *Property) ID() uuid.UUID         { return p.id }
func (p *Property) OwnerID() uuid.UUID    { return p.ownerID }
func (p *Property) Title() string         { return p.title }
func (p *Property) Slug() string          { return p.slug }
func (p *Property) Description() string   { return p.description }
func (p *Property) PropertyType() Type    { return p.propertyType }
func (p *Property) Status() Status        { return p.status }
func (p *Property) PriceCents() int64     { return p.priceCents }
func (p *Property) Bedrooms() int         { return p.bedrooms }
func (p *Property) Bathrooms() int        { return p.bathrooms }
func (p *Property) Parking() int          { return p.parking }
func (p *Property) LandSizeSqm() *float64 { return p.landSizeSqm }
func (p *Property) Street() string        { return p.street }
func (p *Property) Suburb() string        { return p.suburb }
func (p *Property) State() string         { return p.state }
func (p *Property) Postcode() string      { return p.postcode }
func (p *Property) IsFeatured() bool      { return p.isFeatured }
func (p *Property) ViewsCount() int64     { return p.viewsCount }
func (p *Property) CreatedAt() time.Time  { return p.createdAt }
func (p *Property) UpdatedAt() time.Time  { return p.updatedAt }

// IsOwnedBy reports whether the listing belongs to the given user.
// Owners never pay to unlock their own listings.
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}
