package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"todoshell/pkg/models"
	"todoshell/pkg/utils"
)

const userKey = "user"

// UserStorage persists the signed-in user
type UserStorage struct {
	storage Storage
}

func NewUserStorage(s Storage) *UserStorage {
	return &UserStorage{storage: s}
}

// LoadUser returns the stored user and whether one was found
func (u *UserStorage) LoadUser(ctx context.Context) (models.User, bool, error) {
	raw, ok, err := getRecord(ctx, u.storage, userKey)
	if err != nil || !ok {
		return models.User{}, false, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, true, fmt.Errorf("decode stored user: %w", err)
	}
	return user, true, nil
}

// SaveUser serializes the user verbatim
func (u *UserStorage) SaveUser(ctx context.Context, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	utils.Logger().Info("saving user", "email", user.Email)
	return u.storage.Set(ctx, userKey, string(b))
}

// LogoutUser clears the stored user
func (u *UserStorage) LogoutUser(ctx context.Context) error {
	utils.Logger().Info("logging out user")
	return u.storage.Remove(ctx, userKey)
}

// IsUserLoggedIn reports whether a user record is stored
func (u *UserStorage) IsUserLoggedIn(ctx context.Context) (bool, error) {
	_, ok, err := getRecord(ctx, u.storage, userKey)
	return ok, err
}
