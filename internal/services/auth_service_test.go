package services

import (
	"testing"
	"time"

	"amora_backend/internal/models"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Alice",
		Age:      25,
		Gender:   "female",
	}
}

func TestRegister_CreatesPendingUser(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@test.io").Error)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.Equal(t, models.UserRoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerificationToken)
	assert.NotEqual(t, "password123", user.PasswordHash, "пароль не должен храниться открытым текстом")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	err := svc.AuthService.Register(db, registerReq("alice@test.io"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	req := registerReq("alice@test.io")
	req.Password = "short"
	err := svc.AuthService.Register(db, req)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestLogin_FullFlow(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	resp, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "alice@test.io",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@test.io", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	_, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "alice@test.io",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_BannedUserRejected(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@test.io").
		Update("status", models.UserStatusBanned).Error)

	_, err := svc.AuthService.Login(db, &dto.LoginRequest{
		Email:    "alice@test.io",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserBanned)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))
	login, err := svc.AuthService.Login(db, &dto.LoginRequest{Email: "alice@test.io", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.AuthService.RefreshToken(db, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken, "refresh token должен ротироваться")

	// Старый токен погашен
	_, err = svc.AuthService.RefreshToken(db, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))
	login, err := svc.AuthService.Login(db, &dto.LoginRequest{Email: "alice@test.io", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.AuthService.Logout(db, login.RefreshToken))

	_, err = svc.AuthService.RefreshToken(db, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyEmail_ActivatesUser(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@test.io").Error)

	require.NoError(t, svc.AuthService.VerifyEmail(db, user.VerificationToken))

	require.NoError(t, db.First(&user, "id = ?", user.ID).Error)
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.UserStatusActive, user.Status)

	// Повторное использование токена - ошибка
	err := svc.AuthService.VerifyEmail(db, user.VerificationToken)
	assert.Error(t, err)
}

func TestPasswordReset_FullFlow(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))

	require.NoError(t, svc.AuthService.RequestPasswordReset(db, "alice@test.io"))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@test.io").Error)
	require.NotEmpty(t, user.ResetToken)

	require.NoError(t, svc.AuthService.ResetPassword(db, user.ResetToken, "newpassword456"))

	_, err := svc.AuthService.Login(db, &dto.LoginRequest{Email: "alice@test.io", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.AuthService.Login(db, &dto.LoginRequest{Email: "alice@test.io", Password: "newpassword456"})
	assert.NoError(t, err)
}

func TestPasswordReset_UnknownEmailSilent(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	// Несуществующий email не раскрывается ошибкой
	assert.NoError(t, svc.AuthService.RequestPasswordReset(db, "ghost@test.io"))
}

func TestPhoneVerification_FullFlow(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")

	require.NoError(t, svc.AuthService.RequestPhoneCode(db, alice.ID, "+381641234567"))

	var verification models.PhoneVerification
	require.NoError(t, db.Order("created_at DESC").First(&verification, "user_id = ?", alice.ID).Error)
	require.Len(t, verification.Code, 6)

	require.NoError(t, svc.AuthService.ConfirmPhoneCode(db, alice.ID, verification.Code))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	assert.True(t, user.PhoneVerified)
	assert.Equal(t, "+381641234567", user.Phone)

	// Погашенный код не работает повторно
	err := svc.AuthService.ConfirmPhoneCode(db, alice.ID, verification.Code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestPhoneVerification_AttemptsExhausted(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	require.NoError(t, svc.AuthService.RequestPhoneCode(db, alice.ID, "+381641234567"))

	// MaxAttempts = 3 в тестовом конфиге
	for i := 0; i < 3; i++ {
		err := svc.AuthService.ConfirmPhoneCode(db, alice.ID, "000000")
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
	}

	var verification models.PhoneVerification
	require.NoError(t, db.Order("created_at DESC").First(&verification, "user_id = ?", alice.ID).Error)

	// Даже верный код уже не принимается
	err := svc.AuthService.ConfirmPhoneCode(db, alice.ID, verification.Code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestPhoneVerification_ExpiredCodeRejected(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	require.NoError(t, svc.AuthService.RequestPhoneCode(db, alice.ID, "+381641234567"))

	var verification models.PhoneVerification
	require.NoError(t, db.Order("created_at DESC").First(&verification, "user_id = ?", alice.ID).Error)
	require.NoError(t, db.Model(&verification).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err := svc.AuthService.ConfirmPhoneCode(db, alice.ID, verification.Code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestPhoneVerification_PhoneTakenByOtherAccount(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	require.NoError(t, svc.AuthService.RequestPhoneCode(db, alice.ID, "+381641234567"))
	var verification models.PhoneVerification
	require.NoError(t, db.Order("created_at DESC").First(&verification, "user_id = ?", alice.ID).Error)
	require.NoError(t, svc.AuthService.ConfirmPhoneCode(db, alice.ID, verification.Code))

	err := svc.AuthService.RequestPhoneCode(db, bob.ID, "+381641234567")
	assert.ErrorIs(t, err, apperrors.ErrPhoneAlreadyExists)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	_, svc := newTestServices()

	require.NoError(t, svc.AuthService.Register(db, registerReq("alice@test.io")))
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@test.io").Error)

	err := svc.AuthService.ChangePassword(db, user.ID, "wrong", "anotherpass789")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, svc.AuthService.ChangePassword(db, user.ID, "password123", "anotherpass789"))

	_, err = svc.AuthService.Login(db, &dto.LoginRequest{Email: "alice@test.io", Password: "anotherpass789"})
	assert.NoError(t, err)
}
