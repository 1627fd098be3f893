package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"Admin", RoleAdmin, true},
		{"  USER  ", RoleUser, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeMealName(t *testing.T) {
	assert.Equal(t, "tomato soup", NormalizeMealName("  Tomato SOUP "))
	assert.Equal(t, "", NormalizeMealName("   "))
}

func TestUserSummary_NilSafe(t *testing.T) {
	var u *User
	assert.Nil(t, u.Summary())
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("Restaurant not found")
	assert.EqualError(t, err, "Restaurant not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrBadRequest))
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryFineDining.Valid())
	assert.True(t, MealMainCourse.Valid())
	assert.False(t, Category("Drive Thru").Valid())
	assert.False(t, MealCategory("Snacks").Valid())
}
