package attendance

import "time"

// Record is one attendance row. The composite unique index is what
// actually enforces a single Presence record per employee and day.
type Record struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeID   int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_attendance_employee_day,priority:1"`
	Date         string    `gorm:"column:date;not null;uniqueIndex:idx_attendance_employee_day,priority:2"`
	Category     string    `gorm:"column:category;not null;default:Presenza;uniqueIndex:idx_attendance_employee_day,priority:3"`
	EntranceTime *string   `gorm:"column:entrance_time"`
	ExitTime     *string   `gorm:"column:exit_time"`
	Note         *string   `gorm:"column:note"`
	Status       string    `gorm:"column:status;not null;default:Approvata"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type RecordWithEmployee struct {
	Record      `gorm:"embedded"`
	FirstName   string `gorm:"column:first_name"`
	LastName    string `gorm:"column:last_name"`
	BadgeNumber string `gorm:"column:badge_number"`
}
