package employee

import "time"

type Employee struct {
	ID          int64     `gorm:"primaryKey"`
	FirstName   string    `gorm:"column:first_name;not null"`
	LastName    string    `gorm:"column:last_name;not null"`
	BadgeNumber string    `gorm:"column:badge_number;uniqueIndex;not null"`
	JobRole     string    `gorm:"column:job_role;not null"`
	HireDate    string    `gorm:"column:hire_date;not null"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	Phone       *string   `gorm:"column:phone"`
	Department  *string   `gorm:"column:department"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
