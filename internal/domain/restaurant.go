package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryFastFood   Category = "Fast Food"
	CategoryCafe       Category = "Cafe"
	CategoryFineDining Category = "Fine Dining"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFastFood, CategoryCafe, CategoryFineDining:
		return true
	}
	return false
}

type Restaurant struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Email       string               `bson:"email" json:"email"`
	PhoneNo     string               `bson:"phone_no" json:"phone_no"`
	Address     string               `bson:"address" json:"address"`
	Category    Category             `bson:"category" json:"category"`
	Images      []string             `bson:"images,omitempty" json:"images,omitempty"`
	UserID      primitive.ObjectID   `bson:"user" json:"user"`
	UpdatedByID primitive.ObjectID   `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	MealIDs     []primitive.ObjectID `bson:"meals" json:"meals"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// RestaurantPatch carries the optional fields of a restaurant update. Nil
// fields are left untouched.
type RestaurantPatch struct {
	Name        *string
	Description *string
	Email       *string
	PhoneNo     *string
	Address     *string
	Category    *Category
	Images      []string
}

// RestaurantDetails is a restaurant with its direct references resolved, so
// callers never see bare foreign-key ids for owner, updater or meals.
type RestaurantDetails struct {
	Restaurant
	Owner     *UserSummary `json:"owner,omitempty"`
	UpdatedBy *UserSummary `json:"updated_by_user,omitempty"`
	Meals     []Meal       `json:"meal_list,omitempty"`
}
