package dto

type AddPersonnelRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode" validate:"omitempty,len=6,numeric"`
}
