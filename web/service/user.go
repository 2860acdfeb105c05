// Package service implements the panel workflows over the user store.
package service

import (
	"errors"

	"regstats/database"
	"regstats/database/model"
	"regstats/logger"
	"regstats/util/crypto"
)

// ErrDuplicateEmail is returned when a registration reuses an email.
var ErrDuplicateEmail = errors.New("email already registered")

type UserService struct{}

// CreateUser inserts a new user. An empty password leaves PasswordHash
// unset; a non-empty one is stored bcrypt-hashed. Email reuse fails with
// ErrDuplicateEmail, checked explicitly so the caller gets a deterministic
// message, with the unique index as the backstop.
func (s *UserService) CreateUser(name, email, role, password string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("email = ?", email).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	user := &model.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if password != "" {
		hash, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err = db.Create(user).Error
	if database.IsDuplicate(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		logger.Warning("create user err:", err)
		return nil, err
	}
	return user, nil
}

// FindByNameAndEmail returns the user whose name AND email both match the
// given values exactly. A miss returns (nil, nil); callers must not reveal
// which of the two values was wrong.
func (s *UserService) FindByNameAndEmail(name, email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("name = ? AND email = ?", name, email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns every user in insertion (Id) order.
func (s *UserService) GetAllUsers() ([]*model.User, error) {
	db := database.GetDB()

	var users []*model.User
	err := db.Model(model.User{}).
		Order("id").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}
