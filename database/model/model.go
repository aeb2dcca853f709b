// Package model contains the gorm models of the panel's tables.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// CredentialProvider is the provider id of password accounts.
const CredentialProvider = "credential"

type User struct {
	Id            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	EmailVerified bool      `json:"emailVerified" gorm:"not null;default:false"`
	Role          Role      `json:"role" gorm:"type:varchar(16);not null;default:USER"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "user" }

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Session struct {
	Id        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IpAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	UserId    string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string { return "session" }

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Account struct {
	Id                    string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AccountId             string     `json:"accountId" gorm:"not null"`
	ProviderId            string     `json:"providerId" gorm:"not null"`
	UserId                string     `json:"userId" gorm:"type:varchar(36);not null;index"`
	User                  *User      `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	AccessToken           string     `json:"-"`
	RefreshToken          string     `json:"-"`
	IdToken               string     `json:"-"`
	AccessTokenExpiresAt  *time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt *time.Time `json:"refreshTokenExpiresAt"`
	Scope                 string     `json:"scope"`
	Password              string     `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (Account) TableName() string { return "account" }

type Verification struct {
	Id         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Identifier string    `json:"identifier" gorm:"not null;index"`
	Value      string    `json:"value" gorm:"not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Verification) TableName() string { return "verification" }

type SelfIntroduction struct {
	Id      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"not null"`
	Content string `json:"content"`
	Task    string `json:"task"`
}

func (SelfIntroduction) TableName() string { return "selfintroduction" }

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error         { newID(&u.Id); return nil }
func (s *Session) BeforeCreate(*gorm.DB) error      { newID(&s.Id); return nil }
func (a *Account) BeforeCreate(*gorm.DB) error      { newID(&a.Id); return nil }
func (v *Verification) BeforeCreate(*gorm.DB) error { newID(&v.Id); return nil }
