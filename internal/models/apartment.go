package models

// Apartment is a row of the apartments table as exposed by the index.
type Apartment struct {
	ID           int     `json:"id"`
	OwnerID      int     `json:"owner_id"`
	Title        string  `json:"title"`
	Rooms        int     `json:"rooms"`
	Beds         int     `json:"beds"`
	Bathrooms    int     `json:"bathrooms"`
	SquareMeters float64 `json:"square_meters"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Image        string  `json:"image"`
	Vote         int     `json:"vote"`
}

// ApartmentDetail is the composite view returned by GET /apartments/:id.
// Owner is nil when the owner row cannot be joined.
type ApartmentDetail struct {
	Apartment
	Owner    *Owner   `json:"owner"`
	Services []string `json:"services"`
	Reviews  []Review `json:"reviews"`
}

type ApartmentInput struct {
	Title        string  `json:"title" validate:"required,min=3,max=255"`
	Rooms        int     `json:"rooms" validate:"min=1,max=4294967295"`
	Beds         int     `json:"beds" validate:"min=1,max=4294967295"`
	Bathrooms    int     `json:"bathrooms" validate:"min=1,max=4294967295"`
	SquareMeters float64 `json:"square_meters" validate:"min=1,max=9999999999.99"`
	Address      string  `json:"address" validate:"required,max=255"`
	City         string  `json:"city" validate:"required,min=2,max=100"`
	Services     []int   `json:"services"`
}

type ApartmentList struct {
	Count int         `json:"count"`
	Data  []Apartment `json:"data"`
}

func NewApartmentList(apartments []Apartment) ApartmentList {
	if apartments == nil {
		apartments = []Apartment{}
	}
	return ApartmentList{Count: len(apartments), Data: apartments}
}
