package services

import (
	"testing"
	"time"

	"ewaste_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOtpFixture() (*memUserRepo, *recordingNotifier, OtpService) {
	repo := newMemUserRepo()
	notifier := &recordingNotifier{}
	return repo, notifier, NewOtpService(repo, notifier)
}

func TestOtpIssue_CreatesShellForUnknownEmail(t *testing.T) {
	t.Parallel()
	repo, notifier, svc := newOtpFixture()

	require.NoError(t, svc.Issue("new@example.com"))

	user, err := repo.FindByEmail("new@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.Empty(t, user.FullName)
	assert.Empty(t, user.PasswordHash)
	require.NotNil(t, user.OtpExpiry)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), *user.OtpExpiry, 10*time.Second)

	sent := notifier.last("otp")
	require.NotNil(t, sent)
	assert.Equal(t, user.Otp, sent.Code)
	assert.Len(t, sent.Code, 6)
}

func TestOtpIssue_ReplacesPreviousCode(t *testing.T) {
	t.Parallel()
	_, notifier, svc := newOtpFixture()

	require.NoError(t, svc.Issue("new@example.com"))
	first := notifier.last("otp").Code
	require.NoError(t, svc.Issue("new@example.com"))
	second := notifier.last("otp").Code

	if first != second {
		assert.False(t, svc.Verify("new@example.com", first),
			"a reissued code must invalidate the previous one")
	}
	assert.True(t, svc.Verify("new@example.com", second))
}

func TestOtpVerify_IsNonConsuming(t *testing.T) {
	t.Parallel()
	_, notifier, svc := newOtpFixture()

	require.NoError(t, svc.Issue("new@example.com"))
	code := notifier.last("otp").Code

	// Any number of probes, wrong or right, leaves the code usable.
	assert.False(t, svc.Verify("new@example.com", "999999"))
	assert.True(t, svc.Verify("new@example.com", code))
	assert.True(t, svc.Verify("new@example.com", code))
}

func TestOtpVerify_Expired(t *testing.T) {
	t.Parallel()
	repo, notifier, svc := newOtpFixture()

	require.NoError(t, svc.Issue("new@example.com"))
	code := notifier.last("otp").Code

	user, err := repo.FindByEmail("new@example.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Second)
	user.OtpExpiry = &past
	require.NoError(t, repo.Save(user))

	assert.False(t, svc.Verify("new@example.com", code))
}

func TestOtpVerify_UnknownEmail(t *testing.T) {
	t.Parallel()
	_, _, svc := newOtpFixture()
	assert.False(t, svc.Verify("ghost@example.com", "123456"))
}
