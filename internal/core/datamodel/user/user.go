package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeID   *int64     `gorm:"column:employee_id;index"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	AccessLevel  string     `gorm:"column:access_level;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// UserWithEmployee is a user row left-joined with its linked employee.
type UserWithEmployee struct {
	User        `gorm:"embedded"`
	FirstName   *string `gorm:"column:first_name"`
	LastName    *string `gorm:"column:last_name"`
	BadgeNumber *string `gorm:"column:badge_number"`
	JobRole     *string `gorm:"column:job_role"`
}
