package repositories

import (
	"errors"

	"ewaste_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPersonnelNotFound = errors.New("personnel not found")

type PersonnelRepository interface {
	FindByID(id string) (*models.Personnel, error)
	FindActive() ([]models.Personnel, error)
	Create(p *models.Personnel) error
	Save(p *models.Personnel) error
}

type PersonnelRepositoryImpl struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &PersonnelRepositoryImpl{db: db}
}

func (r *PersonnelRepositoryImpl) FindByID(id string) (*models.Personnel, error) {
	var p models.Personnel
	err := r.db.First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PersonnelRepositoryImpl) FindActive() ([]models.Personnel, error) {
	var list []models.Personnel
	err := r.db.Where("active = ?", true).Order("name").Find(&list).Error
	return list, err
}

func (r *PersonnelRepositoryImpl) Create(p *models.Personnel) error {
	return r.db.Create(p).Error
}

func (r *PersonnelRepositoryImpl) Save(p *models.Personnel) error {
	return r.db.Save(p).Error
}
