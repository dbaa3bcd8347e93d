package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. They mirror the
// GORM implementations closely enough to matter: lookups are
// case-insensitive, reads hand out copies so mutations only land via
// Save, and Create enforces email uniqueness.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := u
		return &clone, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			clone := u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) ExistsByID(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *memUserRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) FindAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) DeleteStaleShells(cutoffHours int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-time.Duration(cutoffHours) * time.Hour)
	var n int64
	for id, u := range r.users {
		if u.Status == models.UserStatusPending && u.PasswordHash == "" &&
			u.OtpExpiry != nil && u.OtpExpiry.Before(cutoff) {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

type memDocumentRepo struct {
	mu   sync.Mutex
	docs []models.UserDocument
}

func (r *memDocumentRepo) Create(doc *models.UserDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *memDocumentRepo) FindByUser(userID string) ([]models.UserDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.UserDocument
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocumentRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.docs[:0]
	for _, d := range r.docs {
		if d.UserID != userID {
			kept = append(kept, d)
		}
	}
	r.docs = kept
	return nil
}

type memPersonnelRepo struct {
	mu    sync.Mutex
	items map[string]models.Personnel
}

func newMemPersonnelRepo() *memPersonnelRepo {
	return &memPersonnelRepo{items: make(map[string]models.Personnel)}
}

func (r *memPersonnelRepo) FindByID(id string) (*models.Personnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		clone := p
		return &clone, nil
	}
	return nil, repositories.ErrPersonnelNotFound
}

func (r *memPersonnelRepo) FindActive() ([]models.Personnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Personnel
	for _, p := range r.items {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPersonnelRepo) Create(p *models.Personnel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memPersonnelRepo) Save(p *models.Personnel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return repositories.ErrPersonnelNotFound
	}
	r.items[p.ID] = *p
	return nil
}

type memCollectionRepo struct {
	mu    sync.Mutex
	items map[string]models.CollectionRequest
}

func newMemCollectionRepo() *memCollectionRepo {
	return &memCollectionRepo{items: make(map[string]models.CollectionRequest)}
}

func (r *memCollectionRepo) FindByID(id string) (*models.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.items[id]; ok {
		clone := req
		return &clone, nil
	}
	return nil, repositories.ErrRequestNotFound
}

func (r *memCollectionRepo) FindByUser(userID string) ([]models.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollectionRequest
	for _, req := range r.items {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memCollectionRepo) FindByPersonnelName(fullName string) ([]models.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CollectionRequest
	for _, req := range r.items {
		if req.PickupPersonnel == fullName {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memCollectionRepo) FindAll() ([]models.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CollectionRequest, 0, len(r.items))
	for _, req := range r.items {
		out = append(out, req)
	}
	return out, nil
}

func (r *memCollectionRepo) Create(req *models.CollectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.items[req.ID] = *req
	return nil
}

func (r *memCollectionRepo) Save(req *models.CollectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[req.ID]; !ok {
		return repositories.ErrRequestNotFound
	}
	r.items[req.ID] = *req
	return nil
}

func (r *memCollectionRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.items {
		if req.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

// recordingNotifier captures every outbound notification so tests can
// assert on side effects, including the plaintext credentials that are
// never returned through the API.
type notification struct {
	Kind     string
	To       string
	Name     string
	Password string
	Code     string
	Link     string
	Reason   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) record(ntf notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, ntf)
}

func (n *recordingNotifier) SendOtp(to, code string) {
	n.record(notification{Kind: "otp", To: to, Code: code})
}

func (n *recordingNotifier) SendCredentials(to, name, tempPassword string) {
	n.record(notification{Kind: "credentials", To: to, Name: name, Password: tempPassword})
}

func (n *recordingNotifier) SendPasswordChanged(to string) {
	n.record(notification{Kind: "password_changed", To: to})
}

func (n *recordingNotifier) SendPasswordResetLink(to, link string) {
	n.record(notification{Kind: "reset_link", To: to, Link: link})
}

func (n *recordingNotifier) SendPersonnelWelcome(to, name, tempPassword string) {
	n.record(notification{Kind: "personnel_welcome", To: to, Name: name, Password: tempPassword})
}

func (n *recordingNotifier) SendPickupScheduled(to, name string, date time.Time, pickupTime, personnel string) {
	n.record(notification{Kind: "pickup_scheduled", To: to, Name: personnel})
}

func (n *recordingNotifier) SendPickupCompleted(to, name, deviceType string) {
	n.record(notification{Kind: "pickup_completed", To: to})
}

func (n *recordingNotifier) SendRequestRejected(to, name, reason string) {
	n.record(notification{Kind: "pickup_rejected", To: to, Reason: reason})
}

func (n *recordingNotifier) last(kind string) *notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].Kind == kind {
			return &n.sent[i]
		}
	}
	return nil
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var c int
	for _, s := range n.sent {
		if s.Kind == kind {
			c++
		}
	}
	return c
}

// memStorage is a byte-bucket Storage for upload tests.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(ctx context.Context, path string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *memStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "mem://" + path, nil
}
