package models

type DocumentType string

const (
	DocumentTypeIDProof      DocumentType = "ID_PROOF"
	DocumentTypeAddressProof DocumentType = "ADDRESS_PROOF"
)

// UserDocument is an uploaded verification proof. The file body lives
// in blob storage; this row carries the metadata and storage path.
type UserDocument struct {
	BaseModel
	UserID      string       `gorm:"not null;index" json:"user_id"`
	Type        DocumentType `gorm:"type:varchar(20);not null" json:"type"`
	FileName    string       `gorm:"not null" json:"file_name"`
	ContentType string       `json:"content_type"`
	StoragePath string       `gorm:"not null" json:"-"`
	SizeBytes   int64        `json:"size_bytes"`
}
