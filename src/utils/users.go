package utils

import (
	"errors"
	"log"
	"shareit/src/apperrors"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"

	"gorm.io/gorm"
)

func userToResponse(u *models.User) *types.APIResponseUser {
	return &types.APIResponseUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ensureUserExists is the shared requester check: every authenticated
// operation starts by resolving the identity-header id to a stored user.
func ensureUserExists(tx *gorm.DB, userId uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userId).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("user with id: %d was not found", userId)
	}
	return nil
}

func checkEmailDuplicate(tx *gorm.DB, email string, selfId uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, selfId).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("email %s is already in use", email)
	}
	return nil
}

func GetAllUsers() ([]types.APIResponseUser, error) {
	db := db.GetDb()
	var users []models.User
	if err := db.Model(&models.User{}).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseUser, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, nil
}

func GetUserByID(userId uint) (*types.APIResponseUser, error) {
	db := db.GetDb()
	var user models.User
	err := db.Model(&models.User{}).Scopes(scopes.WithID(userId)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user with id: %d was not found", userId)
	}
	if err != nil {
		return nil, err
	}
	return userToResponse(&user), nil
}

func CreateUser(body *types.CreateUserRequestBody) (*types.APIResponseUser, error) {
	user := models.User{Name: body.Name, Email: body.Email}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkEmailDuplicate(tx, body.Email, 0); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Created user with ID: %d, %s", user.ID, user.Email)
	return userToResponse(&user), nil
}

func UpdateUser(userId uint, body *types.UpdateUserRequestBody) (*types.APIResponseUser, error) {
	var user models.User
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", userId).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user with id: %d was not found", userId)
		}
		if err != nil {
			return err
		}
		if body.Email != nil {
			if err := checkEmailDuplicate(tx, *body.Email, userId); err != nil {
				return err
			}
			user.Email = *body.Email
		}
		if body.Name != nil {
			user.Name = *body.Name
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return userToResponse(&user), nil
}

func DeleteUser(userId uint) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, userId); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userId).Error
	})
}
