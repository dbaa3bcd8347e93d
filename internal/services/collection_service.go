package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/storage"

	"github.com/google/uuid"
)

// CollectionService handles the pickup-request lifecycle. A request is
// a simple status-tagged record; the notifications around scheduling,
// completion and rejection are its only side effects.
type CollectionService interface {
	Create(ctx context.Context, principal string, req *dto.CreateCollectionRequest, imageName, imageType string, image io.Reader) (*models.CollectionRequest, error)
	ListMine(principal string) ([]models.CollectionRequest, error)
	ListAssigned(principal string) ([]models.CollectionRequest, error)
	ListAll() ([]models.CollectionRequest, error)
	Schedule(requestID string, req *dto.ScheduleRequest) (*models.CollectionRequest, error)
	UpdateStatus(requestID string, req *dto.UpdateRequestStatusRequest) (*models.CollectionRequest, error)
}

type CollectionServiceImpl struct {
	collectionRepo repositories.CollectionRepository
	userRepo       repositories.UserRepository
	personnelRepo  repositories.PersonnelRepository
	notifier       email.Notifier
	storage        storage.Storage
}

func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	userRepo repositories.UserRepository,
	personnelRepo repositories.PersonnelRepository,
	notifier email.Notifier,
	store storage.Storage,
) CollectionService {
	return &CollectionServiceImpl{
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
		personnelRepo:  personnelRepo,
		notifier:       notifier,
		storage:        store,
	}
}

func (s *CollectionServiceImpl) Create(ctx context.Context, principal string, req *dto.CreateCollectionRequest, imageName, imageType string, image io.Reader) (*models.CollectionRequest, error) {
	user, err := s.userRepo.FindByEmail(principal)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	request := &models.CollectionRequest{
		UserID:     user.ID,
		DeviceType: req.DeviceType,
		Brand:      req.Brand,
		Model:      req.Model,
		Condition:  req.Condition,
		Quantity:   quantity,
		Address:    req.Address,
		Remarks:    req.Remarks,
		PickupTime: req.PickupTime,
		Status:     models.RequestStatusPending,
	}

	if req.PickupDate != "" {
		date, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			return nil, appErrors.NewBadRequestError("pickup_date must be YYYY-MM-DD")
		}
		request.PickupDate = &date
	}

	if image != nil {
		path := fmt.Sprintf("pickups/%s/%s%s", user.ID, uuid.NewString(), filepath.Ext(imageName))
		if err := s.storage.Save(ctx, path, image, imageType); err != nil {
			return nil, appErrors.InternalError(err)
		}
		request.ImagePath = path
	}

	if err := s.collectionRepo.Create(request); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return request, nil
}

func (s *CollectionServiceImpl) ListMine(principal string) ([]models.CollectionRequest, error) {
	user, err := s.userRepo.FindByEmail(principal)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	list, err := s.collectionRepo.FindByUser(user.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return list, nil
}

// ListAssigned returns the requests assigned to the personnel account
// behind the principal. Assignment is matched by the staff full name
// recorded at scheduling time.
func (s *CollectionServiceImpl) ListAssigned(principal string) ([]models.CollectionRequest, error) {
	user, err := s.userRepo.FindByEmail(principal)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	list, err := s.collectionRepo.FindByPersonnelName(user.FullName)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return list, nil
}

func (s *CollectionServiceImpl) ListAll() ([]models.CollectionRequest, error) {
	list, err := s.collectionRepo.FindAll()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return list, nil
}

// Schedule assigns personnel and a slot, moves the request to
// SCHEDULED and notifies the owner.
func (s *CollectionServiceImpl) Schedule(requestID string, req *dto.ScheduleRequest) (*models.CollectionRequest, error) {
	request, err := s.collectionRepo.FindByID(requestID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, appErrors.ErrRequestNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	personnel, err := s.personnelRepo.FindByID(req.PersonnelID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrPersonnelNotFound) {
			return nil, appErrors.ErrPersonnelNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	date, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return nil, appErrors.NewBadRequestError("pickup_date must be YYYY-MM-DD")
	}

	request.PickupDate = &date
	request.PickupTime = req.PickupTime
	request.PickupPersonnel = personnel.Name
	request.Status = models.RequestStatusScheduled

	if err := s.collectionRepo.Save(request); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if request.User != nil {
		s.notifier.SendPickupScheduled(request.User.Email, request.User.FullName, date, req.PickupTime, personnel.Name)
	}
	return request, nil
}

func (s *CollectionServiceImpl) UpdateStatus(requestID string, req *dto.UpdateRequestStatusRequest) (*models.CollectionRequest, error) {
	request, err := s.collectionRepo.FindByID(requestID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, appErrors.ErrRequestNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	status := models.RequestStatus(req.Status)
	request.Status = status
	if status == models.RequestStatusRejected {
		request.RejectReason = req.Reason
	}

	if err := s.collectionRepo.Save(request); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if request.User != nil {
		switch status {
		case models.RequestStatusCompleted:
			s.notifier.SendPickupCompleted(request.User.Email, request.User.FullName, request.DeviceType)
		case models.RequestStatusRejected:
			s.notifier.SendRequestRejected(request.User.Email, request.User.FullName, req.Reason)
		}
	}
	return request, nil
}
