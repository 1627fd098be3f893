package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealCategory string

const (
	MealSoups      MealCategory = "Soups"
	MealSalads     MealCategory = "Salads"
	MealSandwiches MealCategory = "Sandwiches"
	MealPasta      MealCategory = "Pasta"
	MealMainCourse MealCategory = "Main Course"
	MealDesserts   MealCategory = "Desserts"
	MealBeverages  MealCategory = "Beverages"
)

func (c MealCategory) Valid() bool {
	switch c {
	case MealSoups, MealSalads, MealSandwiches, MealPasta, MealMainCourse, MealDesserts, MealBeverages:
		return true
	}
	return false
}

// NormalizeMealName is the canonical form used for the (name, restaurant)
// uniqueness rule: trimmed and lowercased.
func NormalizeMealName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type Meal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Category     MealCategory       `bson:"category" json:"category"`
	RestaurantID primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// MealPatch carries the optional fields of a meal update. Nil fields are left
// untouched rather than nulled.
type MealPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *MealCategory
}

// MealDetails is a meal with its restaurant and owning user resolved.
type MealDetails struct {
	Meal
	Restaurant *Restaurant  `json:"restaurant_details,omitempty"`
	Owner      *UserSummary `json:"owner,omitempty"`
}

// MealOutcome tags which branch the create-meal upsert took.
type MealOutcome string

const (
	MealCreated MealOutcome = "created"
	MealUpdated MealOutcome = "updated"
)

// MealUpsert is the result of the create-meal operation: the meal that was
// created or updated in place, plus the restaurant repopulated with its meals.
type MealUpsert struct {
	Outcome    MealOutcome
	Meal       Meal
	Restaurant *RestaurantDetails
}
