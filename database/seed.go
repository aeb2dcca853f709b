package database

import (
	"context"

	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/crypto"

	"gorm.io/gorm"
)

const seedPassword = "Password123!"

var seedUsers = []model.User{
	{Name: "システム管理者", Email: "admin@sample.com", Role: model.RoleAdmin},
	{Name: "利用者", Email: "user@sample.com", Role: model.RoleUser},
}

// CreateCredentialUser inserts user together with its password account.
// The caller owns the transaction.
func CreateCredentialUser(tx *gorm.DB, user *model.User, password string) error {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := tx.Create(user).Error; err != nil {
		return err
	}
	return tx.Create(&model.Account{
		AccountId:  user.Id,
		ProviderId: model.CredentialProvider,
		UserId:     user.Id,
		Password:   hash,
	}).Error
}

// Seed replaces every user with the two sample accounts and drops all sessions.
func Seed(ctx context.Context) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Session{}, &model.Account{}, &model.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		for _, u := range seedUsers {
			user := u
			if err := CreateCredentialUser(tx, &user, seedPassword); err != nil {
				return err
			}
			logger.Infof("seeded %s (%s)", user.Email, user.Role)
		}
		return nil
	})
	return err
}
