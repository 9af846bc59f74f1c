package models

// ServiceTag is an amenity from the fixed services catalog (Wi-Fi, Parking, ...).
type ServiceTag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type ServiceTagList struct {
	Count int          `json:"count"`
	Data  []ServiceTag `json:"data"`
}

func NewServiceTagList(tags []ServiceTag) ServiceTagList {
	if tags == nil {
		tags = []ServiceTag{}
	}
	return ServiceTagList{Count: len(tags), Data: tags}
}
