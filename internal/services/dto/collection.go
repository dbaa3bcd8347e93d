package dto

type CreateCollectionRequest struct {
	DeviceType string `form:"device_type" json:"device_type" validate:"required"`
	Brand      string `form:"brand" json:"brand"`
	Model      string `form:"model" json:"model"`
	Condition  string `form:"condition" json:"condition"`
	Quantity   int    `form:"quantity" json:"quantity" validate:"omitempty,min=1"`
	Address    string `form:"address" json:"address" validate:"required,max=1000"`
	Remarks    string `form:"remarks" json:"remarks"`
	PickupDate string `form:"pickup_date" json:"pickup_date"` // YYYY-MM-DD
	PickupTime string `form:"pickup_time" json:"pickup_time"` // HH:MM
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,is-request-status"`
	// Reason accompanies a REJECTED transition.
	Reason string `json:"reason"`
}

type ScheduleRequest struct {
	PersonnelID string `json:"personnel_id" validate:"required"`
	PickupDate  string `json:"pickup_date" validate:"required"` // YYYY-MM-DD
	PickupTime  string `json:"pickup_time" validate:"required"` // HH:MM
}
