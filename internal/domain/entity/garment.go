package entity

import (
	"time"
)

type GarmentType string

const (
	GarmentTypeShirt     GarmentType = "SHIRT"
	GarmentTypeTrousers  GarmentType = "TROUSERS"
	GarmentTypeSkirt     GarmentType = "SKIRT"
	GarmentTypeJacket    GarmentType = "JACKET"
	GarmentTypeDress     GarmentType = "DRESS"
	GarmentTypeShoes     GarmentType = "SHOES"
	GarmentTypeAccessory GarmentType = "ACCESSORY"
	GarmentTypeOther     GarmentType = "OTHER"
)

type GarmentColor string

const (
	GarmentColorBlack     GarmentColor = "BLACK"
	GarmentColorWhite     GarmentColor = "WHITE"
	GarmentColorNavy      GarmentColor = "NAVY"
	GarmentColorRed       GarmentColor = "RED"
	GarmentColorBlue      GarmentColor = "BLUE"
	GarmentColorGreen     GarmentColor = "GREEN"
	GarmentColorYellow    GarmentColor = "YELLOW"
	GarmentColorPurple    GarmentColor = "PURPLE"
	GarmentColorPink      GarmentColor = "PINK"
	GarmentColorGray      GarmentColor = "GRAY"
	GarmentColorBrown     GarmentColor = "BROWN"
	GarmentColorBeige     GarmentColor = "BEIGE"
	GarmentColorPatterned GarmentColor = "PATTERNED"
	GarmentColorOther     GarmentColor = "OTHER"
)

type GarmentFormality string

const (
	GarmentFormalityCasual   GarmentFormality = "CASUAL"
	GarmentFormalityBusiness GarmentFormality = "BUSINESS"
	GarmentFormalityFormal   GarmentFormality = "FORMAL"
	GarmentFormalityAthletic GarmentFormality = "ATHLETIC"
	GarmentFormalityEvening  GarmentFormality = "EVENING"
)

type GarmentFit string

const (
	GarmentFitSlim      GarmentFit = "SLIM"
	GarmentFitRegular   GarmentFit = "REGULAR"
	GarmentFitOversized GarmentFit = "OVERSIZED"
	GarmentFitLoose     GarmentFit = "LOOSE"
)

// Garment is a single wardrobe item. The owning user is set at creation
// from the active session and never changes afterwards.
type Garment struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`

	ImageURL string `json:"image_url" firestore:"imageUrl"`

	Type      GarmentType      `json:"type" firestore:"type"`
	Color     GarmentColor     `json:"color" firestore:"color"`
	Formality GarmentFormality `json:"formality" firestore:"formality"`
	Fit       GarmentFit       `json:"fit" firestore:"fit"`

	Description string `json:"description,omitempty" firestore:"description,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}

func (t GarmentType) Valid() bool {
	switch t {
	case GarmentTypeShirt, GarmentTypeTrousers, GarmentTypeSkirt, GarmentTypeJacket,
		GarmentTypeDress, GarmentTypeShoes, GarmentTypeAccessory, GarmentTypeOther:
		return true
	}
	return false
}

func (c GarmentColor) Valid() bool {
	switch c {
	case GarmentColorBlack, GarmentColorWhite, GarmentColorNavy, GarmentColorRed,
		GarmentColorBlue, GarmentColorGreen, GarmentColorYellow, GarmentColorPurple,
		GarmentColorPink, GarmentColorGray, GarmentColorBrown, GarmentColorBeige,
		GarmentColorPatterned, GarmentColorOther:
		return true
	}
	return false
}

func (f GarmentFormality) Valid() bool {
	switch f {
	case GarmentFormalityCasual, GarmentFormalityBusiness, GarmentFormalityFormal,
		GarmentFormalityAthletic, GarmentFormalityEvening:
		return true
	}
	return false
}

func (f GarmentFit) Valid() bool {
	switch f {
	case GarmentFitSlim, GarmentFitRegular, GarmentFitOversized, GarmentFitLoose:
		return true
	}
	return false
}

// ValidateTags checks all four closed enumerations at once.
func (g *Garment) ValidateTags() bool {
	return g.Type.Valid() && g.Color.Valid() && g.Formality.Valid() && g.Fit.Valid()
}
