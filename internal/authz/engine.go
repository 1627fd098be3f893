// Package authz holds the access-control rules for restaurants and meals as
// pure predicates over an explicit actor. It performs no I/O: callers fetch
// the resources first, then ask for a decision.
package authz

import (
	"github.com/suryateja948/Restaurant-API/internal/domain"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// Decision is an allow/deny verdict. Reason carries the user-facing message
// for denials and is preserved verbatim by the services.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Scope says how wide a listing may range for a given actor.
type Scope int

const (
	// ScopeAll exposes every restaurant or meal.
	ScopeAll Scope = iota
	// ScopeAccessible restricts listing to Fine Dining restaurants plus the
	// actor's own.
	ScopeAccessible
)

// CanCreateRestaurant allows any authenticated actor; the creator becomes the
// owner.
func CanCreateRestaurant(actor Actor) Decision {
	if actor.Role.Valid() {
		return allow()
	}
	return deny("Invalid role")
}

// ListRestaurantsScope decides how wide restaurant listing ranges for the
// actor. Admins see everything; users see Fine Dining plus their own.
func ListRestaurantsScope(actor Actor) (Scope, Decision) {
	switch actor.Role {
	case domain.RoleAdmin:
		return ScopeAll, allow()
	case domain.RoleUser:
		return ScopeAccessible, allow()
	}
	return 0, deny("Invalid role")
}

// CanMutateRestaurant is the shared update/delete predicate: admin, owner, or
// anyone when the restaurant is Fine Dining. Sharing it means Fine Dining
// restaurants are deletable by any authenticated actor, same as updates.
func CanMutateRestaurant(actor Actor, r *domain.Restaurant) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if r.UserID.Hex() == actor.ID {
		return allow()
	}
	if r.Category == domain.CategoryFineDining {
		return allow()
	}
	return deny("You can only update Fine Dining restaurants or restaurants that you own.")
}

// CanCreateMeal gates meal creation on the parent restaurant: admin, Fine
// Dining, or restaurant owner.
func CanCreateMeal(actor Actor, r *domain.Restaurant) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if r.Category == domain.CategoryFineDining || r.UserID.Hex() == actor.ID {
		return allow()
	}
	return deny("You do not own this restaurant or lack permissions")
}

// ListMealsScope mirrors ListRestaurantsScope for the flat meal listing.
func ListMealsScope(actor Actor) (Scope, Decision) {
	switch actor.Role {
	case domain.RoleAdmin:
		return ScopeAll, allow()
	case domain.RoleUser:
		return ScopeAccessible, allow()
	}
	return 0, deny("Invalid role for accessing meals.")
}

// CanViewRestaurantMeals decides whether the actor may list the meals of one
// restaurant.
func CanViewRestaurantMeals(actor Actor, r *domain.Restaurant) Decision {
	switch actor.Role {
	case domain.RoleAdmin:
		return allow()
	case domain.RoleUser:
		if r.Category == domain.CategoryFineDining || r.UserID.Hex() == actor.ID {
			return allow()
		}
		return deny("You can only view meals from Fine Dining restaurants or restaurants you own.")
	}
	return deny("Access denied for this role.")
}

// CanUpdateMeal checks the parent restaurant, mirroring CanMutateRestaurant:
// admin, restaurant owner, or Fine Dining.
func CanUpdateMeal(actor Actor, r *domain.Restaurant) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if r.UserID.Hex() == actor.ID || r.Category == domain.CategoryFineDining {
		return allow()
	}
	return deny("You are not allowed to update meals for this restaurant")
}

// CanDeleteMeal applies the delete rules given the meal and its parent
// restaurant. Admins may delete anything. A user must pass three checks in
// order, each with its own denial reason: own the restaurant, the restaurant
// must be Fine Dining, and own the meal itself.
func CanDeleteMeal(actor Actor, meal *domain.Meal, r *domain.Restaurant) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if actor.Role != domain.RoleUser {
		return deny("Access denied for this role.")
	}
	if r.UserID.Hex() != actor.ID {
		return deny("You are not the owner of this restaurant")
	}
	if r.Category != domain.CategoryFineDining {
		return deny("Only meals under Fine Dining can be deleted by you")
	}
	if meal.UserID.Hex() != actor.ID {
		return deny("You are not authorized to delete this meal")
	}
	return allow()
}
