package services

import (
	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/logger"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
	"ewaste_backend/internal/services/dto"
)

// PersonnelService manages the field-staff roster and its linked login
// accounts.
type PersonnelService interface {
	ListActive() ([]models.Personnel, error)
	// Add onboards a staff member: personnel row, a VERIFIED login
	// account with the PERSONNEL role, and a welcome mail carrying the
	// generated password.
	Add(req *dto.AddPersonnelRequest) (*models.Personnel, error)
	// Deactivate soft-disables the roster entry and suspends the
	// linked account.
	Deactivate(id string) error
}

type PersonnelServiceImpl struct {
	personnelRepo repositories.PersonnelRepository
	userRepo      repositories.UserRepository
	notifier      email.Notifier
}

func NewPersonnelService(
	personnelRepo repositories.PersonnelRepository,
	userRepo repositories.UserRepository,
	notifier email.Notifier,
) PersonnelService {
	return &PersonnelServiceImpl{
		personnelRepo: personnelRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

func (s *PersonnelServiceImpl) ListActive() ([]models.Personnel, error) {
	list, err := s.personnelRepo.FindActive()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return list, nil
}

func (s *PersonnelServiceImpl) Add(req *dto.AddPersonnelRequest) (*models.Personnel, error) {
	personnel := &models.Personnel{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Pincode: req.Pincode,
		Active:  true,
	}
	if err := s.personnelRepo.Create(personnel); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if personnel.Email == "" {
		return personnel, nil
	}

	// Field staff skip the OTP flow: their account is born VERIFIED
	// with a generated password that must be rotated on first login.
	if _, err := s.userRepo.FindByEmail(personnel.Email); err == nil {
		logger.Warn("personnel email already has an account, skipping account creation",
			"email", personnel.Email)
		return personnel, nil
	} else if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.InternalError(err)
	}

	password := auth.GeneratePersonnelPassword(personnel.Name, personnel.Pincode)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	account := &models.User{
		FullName:          personnel.Name,
		Email:             personnel.Email,
		Username:          personnel.Email,
		Phone:             personnel.Phone,
		Address:           personnel.Address,
		PasswordHash:      hash,
		Status:            models.UserStatusVerified,
		MustResetPassword: true,
		Roles:             models.RoleSet{models.RolePersonnel},
	}
	if err := s.userRepo.Create(account); err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.notifier.SendPersonnelWelcome(personnel.Email, personnel.Name, password)
	return personnel, nil
}

func (s *PersonnelServiceImpl) Deactivate(id string) error {
	personnel, err := s.personnelRepo.FindByID(id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrPersonnelNotFound) {
			return appErrors.ErrPersonnelNotFound
		}
		return appErrors.InternalError(err)
	}

	personnel.Active = false
	if err := s.personnelRepo.Save(personnel); err != nil {
		return appErrors.InternalError(err)
	}

	if personnel.Email == "" {
		return nil
	}

	account, err := s.userRepo.FindByEmail(personnel.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return appErrors.InternalError(err)
	}

	account.Status = models.UserStatusSuspended
	if err := s.userRepo.Save(account); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}
