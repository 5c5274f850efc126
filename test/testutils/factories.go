// Package testutils provides test data factories and in-memory fakes
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// UserFactory provides methods to create consistent user test data
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a new user factory with a seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{
		faker: gofakeit.New(seed),
	}
}

// Email returns a unique, valid-looking email address
func (f *UserFactory) Email() string {
	return fmt.Sprintf("%s.%d@%s", f.faker.Username(), f.faker.Number(1000, 9999), f.faker.DomainName())
}

// Password returns a password satisfying the minimum length rule
func (f *UserFactory) Password() string {
	return f.faker.Password(true, true, true, false, false, 12)
}

// FavoriteFactory provides methods to create favorite test data
type FavoriteFactory struct {
	faker *gofakeit.Faker
}

// NewFavoriteFactory creates a new favorite factory with a seeded faker
func NewFavoriteFactory(seed int64) *FavoriteFactory {
	return &FavoriteFactory{
		faker: gofakeit.New(seed),
	}
}

// Title returns a plausible recipe title
func (f *FavoriteFactory) Title() string {
	return fmt.Sprintf("%s %s", f.faker.AdjectiveDescriptive(), f.faker.Dinner())
}

// Content returns a plausible generated recipe body
func (f *FavoriteFactory) Content() string {
	return fmt.Sprintf("## Recipe Name\n%s\n\n## Ingredients\n- %s\n- %s\n\n## Instructions\n1. %s\n\n## Cooking Time\n%d minutes",
		f.faker.Dinner(),
		f.faker.Vegetable(),
		f.faker.Fruit(),
		f.faker.Sentence(8),
		f.faker.Number(10, 90),
	)
}

// Ingredients returns n ingredient names
func (f *FavoriteFactory) Ingredients(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Vegetable()
	}
	return out
}

// DefaultSeed gives per-run variety while remaining reproducible within a run
func DefaultSeed() int64 {
	return time.Now().UnixNano()
}
