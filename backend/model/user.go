package model

import (
	"errors"

	"gorm.io/gorm"
)

// User is an account in the catalog. Password holds the hex SHA-1 digest of
// the password and never appears in API responses.
type User struct {
	ID       uint64 `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password string `json:"-" gorm:"size:40;not null"`
}

var ErrEmailTaken = errors.New("email already registered")

// InsertUser registers a new account. A duplicate email fails with
// ErrEmailTaken, it never overwrites the existing account.
func InsertUser(email, passwordDigest string) (*User, error) {
	var n int64
	if err := db.Model(&User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}
	user := &User{Email: email, Password: passwordDigest}
	// The unique index backstops the race between the check and the insert.
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmailAndPassword returns the account matching both the email and
// the password digest, or nil when no such account exists. The caller cannot
// tell an unknown email from a wrong password.
func GetUserByEmailAndPassword(email, passwordDigest string) (*User, error) {
	var user User
	err := db.Where("email = ? AND password = ?", email, passwordDigest).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(id uint64) (*User, error) {
	var user User
	err := db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CountUsers() (int64, error) {
	var n int64
	err := db.Model(&User{}).Count(&n).Error
	return n, err
}
