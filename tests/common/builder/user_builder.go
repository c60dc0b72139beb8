package builder

import (
	"fmt"
	"time"

	"lendly/internal/domain/user"
)

var userSeq int

type UserBuilder struct {
	name  string
	email string
	now   time.Time
}

func NewUserBuilder() *UserBuilder {
	userSeq++
	return &UserBuilder{
		name:  fmt.Sprintf("User %d", userSeq),
		email: fmt.Sprintf("user%d@example.com", userSeq),
		now:   time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithNow(now time.Time) *UserBuilder {
	b.now = now
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	return user.NewUser(b.name, b.email, b.now)
}

// MustBuild panics on validation failure; for fixtures known to be valid.
func (b *UserBuilder) MustBuild() *user.User {
	u, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return u
}
