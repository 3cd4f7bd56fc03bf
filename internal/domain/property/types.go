package property

import "errors"

var (
	ErrInvalidPropertyType = errors.New("invalid property type")
	ErrInvalidStatus       = errors.New("invalid property status")
	ErrInvalidPrice        = errors.New("price must be positive")
	ErrEmptyTitle          = errors.New("title must not be empty")
)

type Type string

const (
	TypeHouse     Type = "house"
	TypeApartment Type = "apartment"
	TypeTownhouse Type = "townhouse"
	TypeLand      Type = "land"
	TypeStrata    Type = "strata"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeTownhouse, TypeLand, TypeStrata:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidPropertyType
	}
	return t, nil
}

type Status string

const (
	StatusAvailable  Status = "available"
	StatusUnderOffer Status = "under_offer"
	StatusSold       Status = "sold"
	StatusOffMarket  Status = "off_market"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnderOffer, StatusSold, StatusOffMarket:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
