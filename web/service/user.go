package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskmanager/taskmanager/database"
	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/table"

	"gorm.io/gorm"
)

// UserService manages the user table behind the users page.
type UserService struct {
	// Auth, when set, has its cached sessions dropped for users that change.
	Auth *AuthService
}

type UserPage struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
}

type UserCreate struct {
	Name     string     `json:"name" form:"name" binding:"required"`
	Email    string     `json:"email" form:"email" binding:"required,email"`
	Password string     `json:"password" form:"password" binding:"required,min=8,max=72"`
	Role     model.Role `json:"-" form:"-"`
}

type UserUpdate struct {
	Id    string     `json:"id" form:"id"`
	Name  string     `json:"name" form:"name" binding:"required"`
	Email string     `json:"email" form:"email" binding:"required,email"`
	Role  model.Role `json:"role" form:"role" binding:"required"`
}

// ListUsers returns one page of users in creation order and the total count,
// both read in the same transaction.
func (s *UserService) ListUsers(ctx context.Context, page table.PageState) (*UserPage, error) {
	page = page.Normalize()
	result := &UserPage{Users: []model.User{}}
	err := database.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Count(&result.Total).Error; err != nil {
			return err
		}
		return tx.Order("created_at ASC").
			Limit(page.PageSize).
			Offset(page.Offset()).
			Find(&result.Users).
			Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().WithContext(ctx).Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// InsertUser creates a user with a password account. No session is issued.
func (s *UserService) InsertUser(ctx context.Context, in UserCreate) (*model.User, error) {
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	user := &model.User{
		Name:  strings.TrimSpace(in.Name),
		Email: normalizeEmail(in.Email),
		Role:  role,
	}
	err := database.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, user.Email, ""); err != nil {
			return err
		}
		return database.CreateCredentialUser(tx, user, in.Password)
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	logger.Infof("user %s created", user.Email)
	return user, nil
}

// UpdateUser changes name, e-mail and role. An empty id is a no-op.
func (s *UserService) UpdateUser(ctx context.Context, in UserUpdate) error {
	if in.Id == "" {
		return nil
	}
	if !in.Role.Valid() {
		return ErrInvalidRole
	}
	email := normalizeEmail(in.Email)
	err := database.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, email, in.Id); err != nil {
			return err
		}
		res := tx.Model(&model.User{}).
			Where("id = ?", in.Id).
			Updates(map[string]any{
				"name":       strings.TrimSpace(in.Name),
				"email":      email,
				"role":       in.Role,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return translateWriteError(err)
	}
	s.Auth.InvalidateUser(in.Id)
	return nil
}

// DeleteUser removes the user id on behalf of current, who must be an
// administrator other than the user being deleted.
func (s *UserService) DeleteUser(ctx context.Context, current *model.User, id string) error {
	if !current.IsAdmin() {
		return ErrAdminRequired
	}
	if current.Id == id {
		return ErrDeleteSelf
	}
	res := database.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	s.Auth.InvalidateUser(id)
	logger.Infof("user %s deleted by %s", id, current.Email)
	return nil
}

// GetSelfIntroduction returns the first self-introduction record, or nil when there is none.
func (s *UserService) GetSelfIntroduction(ctx context.Context) (*model.SelfIntroduction, error) {
	intro := &model.SelfIntroduction{}
	err := database.GetDB().WithContext(ctx).Order("id ASC").First(intro).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return intro, nil
}

func ensureEmailFree(tx *gorm.DB, email, exceptID string) error {
	var count int64
	q := tx.Model(&model.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	return nil
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
