package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/logger"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/storage"

	"github.com/google/uuid"
)

// UserService is the account lifecycle manager: registration, email
// verification, admin approval, status overrides, deletion and profile
// management.
type UserService interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	VerifyEmail(emailAddr, otp string) (*models.User, error)
	Approve(userID string, approve bool) (*models.User, error)
	SetStatus(userID string, status models.UserStatus) error
	Delete(userID string) error

	GetProfile(emailAddr string) (*models.User, error)
	UpdateProfile(emailAddr string, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateIdentity(emailAddr string, req *dto.UpdateIdentityRequest) (*models.User, error)
	UploadProof(ctx context.Context, emailAddr string, docType models.DocumentType, fileName, contentType string, size int64, file io.Reader) (*models.UserDocument, error)
	ListUsers() ([]dto.UserSummary, error)
}

type UserServiceImpl struct {
	userRepo       repositories.UserRepository
	documentRepo   repositories.DocumentRepository
	collectionRepo repositories.CollectionRepository
	otpService     OtpService
	notifier       email.Notifier
	storage        storage.Storage
}

func NewUserService(
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
	collectionRepo repositories.CollectionRepository,
	otpService OtpService,
	notifier email.Notifier,
	store storage.Storage,
) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		documentRepo:   documentRepo,
		collectionRepo: collectionRepo,
		otpService:     otpService,
		notifier:       notifier,
		storage:        store,
	}
}

// Register creates a PENDING account with no password and triggers OTP
// issuance for the email. A shell account left behind by a
// pre-registration OTP request is claimed instead of rejected; a real
// (named) account with the same email is a duplicate.
func (s *UserServiceImpl) Register(req *dto.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.InternalError(err)
	}

	var user *models.User
	if existing != nil {
		if existing.FullName != "" {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		user = existing
		user.FullName = req.FullName
		user.Phone = req.Phone
		user.Roles = user.Roles.Add(models.RoleUser)
		if err := s.userRepo.Save(user); err != nil {
			return nil, appErrors.InternalError(err)
		}
	} else {
		user = &models.User{
			FullName: req.FullName,
			Email:    req.Email,
			Username: req.Email,
			Phone:    req.Phone,
			Status:   models.UserStatusPending,
			Roles:    models.RoleSet{models.RoleUser},
		}
		if err := s.userRepo.Create(user); err != nil {
			if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
				return nil, appErrors.ErrEmailAlreadyExists
			}
			return nil, appErrors.InternalError(err)
		}
	}

	if err := s.otpService.Issue(user.Email); err != nil {
		// OTP delivery problems must not roll back the registration;
		// the user can request a fresh code.
		logger.WithError(err).Warn("failed to issue registration otp", "email", user.Email)
	}

	return user, nil
}

// VerifyEmail consumes the OTP: on success the account becomes
// VERIFIED and receives a one-time temporary password, delivered
// out-of-band and never returned to the caller.
func (s *UserServiceImpl) VerifyEmail(emailAddr, otp string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.Otp == "" || user.Otp != otp {
		return nil, appErrors.ErrInvalidOtp
	}
	if user.OtpExpiry == nil || time.Now().After(*user.OtpExpiry) {
		return nil, appErrors.ErrOtpExpired
	}

	tempPassword := auth.GenerateTempPassword()
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user.Status = models.UserStatusVerified
	user.ClearOtp()
	user.PasswordHash = hash
	user.MustResetPassword = true
	user.Roles = user.Roles.Add(models.RoleUser)

	if err := s.userRepo.Save(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.notifier.SendCredentials(user.Email, user.FullName, tempPassword)
	return user, nil
}

// Approve resolves a PENDING registration. Approval installs a fresh
// temporary-password hash; the plaintext is generated once, mailed,
// and never persisted. Rejection flips the status and nothing else.
func (s *UserServiceImpl) Approve(userID string, approve bool) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if !approve {
		user.Status = models.UserStatusRejected
		if err := s.userRepo.Save(user); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return user, nil
	}

	tempPassword := auth.GenerateTempPassword()
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user.Status = models.UserStatusVerified
	user.PasswordHash = hash
	user.MustResetPassword = true
	user.Roles = user.Roles.Add(models.RoleUser)

	if err := s.userRepo.Save(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.notifier.SendCredentials(user.Email, user.FullName, tempPassword)
	return user, nil
}

// SetStatus is the direct administrative override used for suspension
// and reinstatement. No side effects beyond the field change.
func (s *UserServiceImpl) SetStatus(userID string, status models.UserStatus) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	user.Status = status
	if err := s.userRepo.Save(user); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// Delete permanently removes the account together with its documents
// and pickup requests. Hard delete, no tombstone.
func (s *UserServiceImpl) Delete(userID string) error {
	exists, err := s.userRepo.ExistsByID(userID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !exists {
		return appErrors.ErrUserNotFound
	}

	if err := s.documentRepo.DeleteByUser(userID); err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.collectionRepo.DeleteByUser(userID); err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) GetProfile(emailAddr string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

// UpdateProfile mutates the non-identity profile fields only.
func (s *UserServiceImpl) UpdateProfile(emailAddr string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(emailAddr)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	user.Address = req.Address
	user.City = req.City

	if err := s.userRepo.Save(user); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

// UpdateIdentity additionally changes email (and the mirrored
// username) after re-validating uniqueness.
func (s *UserServiceImpl) UpdateIdentity(emailAddr string, req *dto.UpdateIdentityRequest) (*models.User, error) {
	user, err := s.GetProfile(emailAddr)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		other, err := s.userRepo.FindByEmail(req.Email)
		if err != nil && !appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.InternalError(err)
		}
		if other != nil && other.ID != user.ID {
			return nil, appErrors.ErrEmailAlreadyExists
		}
		user.Email = req.Email
		if user.Username != "" && user.Username == emailAddr {
			// Username mirrors the email unless it diverged.
			user.Username = req.Email
		}
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	user.Address = req.Address
	user.City = req.City

	if err := s.userRepo.Save(user); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

// UploadProof stores a verification document and records its metadata.
func (s *UserServiceImpl) UploadProof(ctx context.Context, emailAddr string, docType models.DocumentType, fileName, contentType string, size int64, file io.Reader) (*models.UserDocument, error) {
	user, err := s.GetProfile(emailAddr)
	if err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("proofs/%s/%s%s", user.ID, uuid.NewString(), filepath.Ext(fileName))
	if err := s.storage.Save(ctx, storagePath, file, contentType); err != nil {
		return nil, appErrors.InternalError(err)
	}

	doc := &models.UserDocument{
		UserID:      user.ID,
		Type:        docType,
		FileName:    fileName,
		ContentType: contentType,
		StoragePath: storagePath,
		SizeBytes:   size,
	}
	if err := s.documentRepo.Create(doc); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return doc, nil
}

func (s *UserServiceImpl) ListUsers() ([]dto.UserSummary, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, dto.UserSummaryFrom(&users[i]))
	}
	return summaries, nil
}
