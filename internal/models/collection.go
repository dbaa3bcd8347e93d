package models

import "time"

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusScheduled  RequestStatus = "SCHEDULED"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusCancelled  RequestStatus = "CANCELLED"
	RequestStatusRejected   RequestStatus = "REJECTED"
)

// CollectionRequest is an e-waste pickup request raised by a user and
// worked by field personnel.
type CollectionRequest struct {
	BaseModel
	UserID     string        `gorm:"not null;index" json:"user_id"`
	User       *User         `gorm:"foreignKey:UserID" json:"-"`
	DeviceType string        `gorm:"not null" json:"device_type"`
	Brand      string        `json:"brand"`
	Model      string        `json:"model"`
	Condition  string        `json:"condition"`
	Quantity   int           `gorm:"default:1" json:"quantity"`
	Address    string        `gorm:"type:varchar(1000)" json:"address"`
	Remarks    string        `json:"remarks"`
	PickupDate *time.Time    `json:"pickup_date"`
	PickupTime string        `json:"pickup_time"`
	ImagePath  string        `json:"image_path,omitempty"`
	Status     RequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	// Full name of the assigned personnel; set when an admin schedules
	// the pickup.
	PickupPersonnel string `json:"pickup_personnel,omitempty"`
	RejectReason    string `json:"reject_reason,omitempty"`
}
