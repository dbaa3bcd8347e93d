package models

// Personnel is a field-staff record managed by admins. Deactivation is
// a soft flag so past pickups keep their assignee; the linked login
// account is suspended separately.
type Personnel struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"index" json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	Active  bool   `gorm:"default:true" json:"active"`
}
