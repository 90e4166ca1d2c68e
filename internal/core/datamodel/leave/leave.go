package leave

import "time"

type Request struct {
	ID          int64     `gorm:"primaryKey"`
	EmployeeID  int64     `gorm:"column:employee_id;not null;index"`
	RequestType string    `gorm:"column:request_type;not null"`
	StartDate   string    `gorm:"column:start_date;not null"`
	EndDate     string    `gorm:"column:end_date;not null"`
	Reason      *string   `gorm:"column:reason"`
	Status      string    `gorm:"column:status;not null;index"`
	SubmittedOn string    `gorm:"column:submitted_on;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string {
	return "leave_requests"
}

type RequestWithEmployee struct {
	Request     `gorm:"embedded"`
	FirstName   string `gorm:"column:first_name"`
	LastName    string `gorm:"column:last_name"`
	BadgeNumber string `gorm:"column:badge_number"`
}
