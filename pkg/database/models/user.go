package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// User is an application user (Admin/Analyst) of the monitoring tool, for
// login and access control bookkeeping. Users have no links into the domain
// tables.
type User struct {
	// UserID is the surrogate primary key.
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement"`

	// Username is the globally unique login name.
	Username string `gorm:"column:username;type:varchar(50);uniqueIndex;not null"`

	// PasswordHash is the stored credential hash; plaintext never lands here.
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`

	// Role is the access role, e.g. "admin" or "analyst".
	Role string `gorm:"column:role;type:varchar(30);not null"`

	// Email is the globally unique contact address.
	Email string `gorm:"column:email;type:varchar(100);uniqueIndex;not null"`

	// IsActive marks whether the account may log in.
	IsActive bool `gorm:"column:is_active;not null"`

	// CreatedAt is the date and time when the row was created.
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:true"`

	// LastLogin is the date and time of the most recent login, if any.
	LastLogin *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string {
	return database.UsersTableName
}
