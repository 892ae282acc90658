package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUser can review submissions and settle manual payments.
type AdminUser struct {
	AdminID uuid.UUID `gorm:"column:admin_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admin_id"`

	AdminEmail        string `gorm:"column:admin_email;uniqueIndex;not null" json:"admin_email"`
	AdminName         string `gorm:"column:admin_name;not null" json:"admin_name"`
	AdminPasswordHash string `gorm:"column:admin_password_hash;not null" json:"-"`
	AdminActive       bool   `gorm:"column:admin_active;not null;default:true" json:"admin_active"`

	AdminLastLoginAt *time.Time `gorm:"column:admin_last_login_at" json:"admin_last_login_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:admin_created_at;autoCreateTime" json:"admin_created_at"`
	UpdatedAt time.Time      `gorm:"column:admin_updated_at;autoUpdateTime" json:"admin_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:admin_deleted_at;index" json:"admin_deleted_at,omitempty"`
}

func (AdminUser) TableName() string { return "admin_users" }

func (u *AdminUser) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.AdminPasswordHash = string(hash)
	return nil
}

func (u *AdminUser) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.AdminPasswordHash), []byte(plain)) == nil
}
