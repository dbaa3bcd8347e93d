package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "PENDING"
	UserStatusVerified  UserStatus = "VERIFIED"
	UserStatusRejected  UserStatus = "REJECTED"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type UserRole string

const (
	RoleAdmin     UserRole = "ROLE_ADMIN"
	RoleUser      UserRole = "ROLE_USER"
	RolePersonnel UserRole = "ROLE_PERSONNEL"
)

// rolePriority orders roles for the login token claim. An account may
// carry several role tags but the token carries exactly one.
var rolePriority = []UserRole{RoleAdmin, RolePersonnel, RoleUser}

// RoleSet is an unordered set of role tags stored as a single text
// column. Roles have no hierarchy or permissions of their own, so a
// dedicated table buys nothing here.
type RoleSet []UserRole

func (rs RoleSet) Value() (driver.Value, error) {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ","), nil
}

func (rs *RoleSet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*rs = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RoleSet", value)
	}

	*rs = nil
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*rs = append(*rs, UserRole(part))
		}
	}
	return nil
}

// Has reports whether the set contains the given role.
func (rs RoleSet) Has(role UserRole) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Add inserts a role, keeping the set free of duplicates.
func (rs RoleSet) Add(role UserRole) RoleSet {
	if rs.Has(role) {
		return rs
	}
	return append(rs, role)
}

// Primary returns the role used for the session token: the highest
// priority tag present, falling back to ROLE_USER for an empty set.
func (rs RoleSet) Primary() UserRole {
	for _, r := range rolePriority {
		if rs.Has(r) {
			return r
		}
	}
	return RoleUser
}

// User is the account record. OTP and reset-token fields travel in
// pairs: code and expiry are always set or cleared together.
type User struct {
	BaseModel
	FullName          string     `gorm:"not null" json:"full_name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Username          string     `gorm:"uniqueIndex;not null" json:"username"`
	Phone             string     `json:"phone"`
	Address           string     `gorm:"type:varchar(1000)" json:"address"`
	City              string     `json:"city"`
	PasswordHash      string     `json:"-"`
	Status            UserStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	MustResetPassword bool       `gorm:"default:false" json:"must_reset_password"`
	Roles             RoleSet    `gorm:"type:text" json:"roles"`

	Otp           string     `gorm:"type:varchar(6)" json:"-"`
	OtpExpiry     *time.Time `json:"-"`
	ResetToken    string     `gorm:"type:varchar(100)" json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	Documents []UserDocument `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasPassword reports whether the account ever passed verification or
// admin approval; only then does a password hash exist.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ClearOtp drops the OTP pair as a unit.
func (u *User) ClearOtp() {
	u.Otp = ""
	u.OtpExpiry = nil
}

// SetOtp installs a fresh OTP pair, overwriting any previous one.
func (u *User) SetOtp(code string, expiry time.Time) {
	u.Otp = code
	u.OtpExpiry = &expiry
}

// ClearResetToken drops the reset-token pair as a unit.
func (u *User) ClearResetToken() {
	u.ResetToken = ""
	u.ResetTokenExp = nil
}

// SetResetToken installs a fresh reset-token pair, invalidating any
// previous recovery link.
func (u *User) SetResetToken(token string, expiry time.Time) {
	u.ResetToken = token
	u.ResetTokenExp = &expiry
}
