package repositories

import (
	"errors"

	"ewaste_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("collection request not found")

type CollectionRepository interface {
	FindByID(id string) (*models.CollectionRequest, error)
	FindByUser(userID string) ([]models.CollectionRequest, error)
	FindByPersonnelName(fullName string) ([]models.CollectionRequest, error)
	FindAll() ([]models.CollectionRequest, error)
	Create(req *models.CollectionRequest) error
	Save(req *models.CollectionRequest) error
	DeleteByUser(userID string) error
}

type CollectionRepositoryImpl struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

func (r *CollectionRepositoryImpl) FindByID(id string) (*models.CollectionRequest, error) {
	var req models.CollectionRequest
	err := r.db.Preload("User").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *CollectionRepositoryImpl) FindByUser(userID string) ([]models.CollectionRequest, error) {
	var list []models.CollectionRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *CollectionRepositoryImpl) FindByPersonnelName(fullName string) ([]models.CollectionRequest, error) {
	var list []models.CollectionRequest
	err := r.db.Preload("User").
		Where("pickup_personnel = ?", fullName).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *CollectionRepositoryImpl) FindAll() ([]models.CollectionRequest, error) {
	var list []models.CollectionRequest
	err := r.db.Preload("User").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *CollectionRepositoryImpl) Create(req *models.CollectionRequest) error {
	return r.db.Create(req).Error
}

func (r *CollectionRepositoryImpl) Save(req *models.CollectionRequest) error {
	result := r.db.Save(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *CollectionRepositoryImpl) DeleteByUser(userID string) error {
	return r.db.Delete(&models.CollectionRequest{}, "user_id = ?", userID).Error
}
