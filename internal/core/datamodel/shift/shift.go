package shift

import "time"

type Shift struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id;not null;index"`
	Date       string    `gorm:"column:date;not null;index"`
	StartTime  string    `gorm:"column:start_time;not null"`
	EndTime    string    `gorm:"column:end_time;not null"`
	ShiftType  string    `gorm:"column:shift_type;not null;default:Standard"`
	Note       *string   `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Shift) TableName() string {
	return "shifts"
}

type ShiftWithEmployee struct {
	Shift       `gorm:"embedded"`
	FirstName   string `gorm:"column:first_name"`
	LastName    string `gorm:"column:last_name"`
	BadgeNumber string `gorm:"column:badge_number"`
}
