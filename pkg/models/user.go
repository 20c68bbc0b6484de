package models

import (
	"time"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAvatarURL is assigned at signup when no avatar is supplied.
const DefaultAvatarURL = "https://placehold.co/96x96?text=avatar"

const bcryptCost = 12

type User struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:20;unique_index;not null" json:"username"`
	Email     string    `gorm:"size:255;unique_index;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	Channels  []Channel `gorm:"foreignkey:OwnerID" json:"channels,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate hashes the plaintext password before the row is written,
// so the stored value is never the submitted password.
func (u *User) BeforeCreate(scope *gorm.Scope) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
	if err != nil {
		return err
	}
	return scope.SetColumn("Password", string(hashed))
}

// CheckPassword compares a plaintext candidate against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
