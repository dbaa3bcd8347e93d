package repositories

import (
	"errors"

	"ewaste_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(doc *models.UserDocument) error
	FindByUser(userID string) ([]models.UserDocument, error)
	DeleteByUser(userID string) error
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(doc *models.UserDocument) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepositoryImpl) FindByUser(userID string) ([]models.UserDocument, error) {
	var docs []models.UserDocument
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) DeleteByUser(userID string) error {
	return r.db.Delete(&models.UserDocument{}, "user_id = ?", userID).Error
}
