package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"amora_backend/internal/auth"
	"amora_backend/internal/config"
	"amora_backend/internal/email"
	"amora_backend/internal/logger"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CodeSender доставляет SMS-код подтверждения номера.
// Реальный шлюз подключается в app, в тестах - мок.
type CodeSender interface {
	SendCode(phone, code string) error
}

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error

	// Телефон подтверждается одноразовым кодом с ограниченным числом попыток.
	RequestPhoneCode(db *gorm.DB, userID, phone string) error
	ConfirmPhoneCode(db *gorm.DB, userID, code string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	codeSender    CodeSender
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	codeSender CodeSender,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		codeSender:    codeSender,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              models.UserRoleMember,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: verificationToken,
		Name:              req.Name,
		Age:               req.Age,
		Gender:            models.Gender(req.Gender),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.PersistenceError(err)
	}

	s.sendVerificationEmail(user.Email, verificationToken)

	return nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.PersistenceError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	return s.issueTokens(db, user)
}

// RefreshToken - обновление access token по refresh token
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		// Неважно, какая ошибка - токен невалиден
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	// Ротация: старый токен гасится до выпуска нового
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return s.issueTokens(db, user)
}

// Logout - выход (удаление refresh token)
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(db, refreshToken)
}

// VerifyEmail - подтверждение email по токену из письма
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	return s.userRepo.VerifyEmail(db, user.ID)
}

// RequestPasswordReset - запрос сброса пароля
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		// Не раскрываем существование email
		return nil
	}

	resetToken := generateRandomToken()
	resetTokenExp := time.Now().Add(1 * time.Hour)

	user.ResetToken = resetToken
	user.ResetTokenExp = &resetTokenExp

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.PersistenceError(err)
	}

	s.sendPasswordResetEmail(user.Email, resetToken)

	return nil
}

// ResetPassword - сброс пароля по токену
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.PersistenceError(err)
	}

	// Все сессии гасятся
	s.userRepo.DeleteUserRefreshTokens(db, user.ID)

	return nil
}

// ChangePassword - смена пароля (когда пользователь знает текущий)
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.PersistenceError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

// RequestPhoneCode выпускает новый SMS-код для userID. Предыдущие
// несгоревшие коды при этом перестают действовать.
func (s *AuthServiceImpl) RequestPhoneCode(db *gorm.DB, userID, phone string) error {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return apperrors.PersistenceError(err)
	}

	// Номер, уже подтвержденный другим аккаунтом, занять нельзя
	existing, err := s.userRepo.FindByPhone(db, phone)
	if err == nil && existing.ID != userID {
		return apperrors.ErrPhoneAlreadyExists
	}

	cfg := config.GetConfig()
	code, err := generateNumericCode(6)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verification := &models.PhoneVerification{
		UserID:    userID,
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(time.Duration(cfg.Verification.CodeTTL) * time.Minute),
	}
	if err := s.userRepo.CreatePhoneVerification(db, verification); err != nil {
		return apperrors.PersistenceError(err)
	}

	if err := s.codeSender.SendCode(phone, code); err != nil {
		logger.Error("failed to send verification code", "user_id", userID, "error", err)
		return apperrors.InternalError(err)
	}

	return nil
}

// ConfirmPhoneCode сверяет код с последним выпущенным. Исчерпание
// попыток или истекший срок делают код бесполезным навсегда.
func (s *AuthServiceImpl) ConfirmPhoneCode(db *gorm.DB, userID, code string) error {
	verification, err := s.userRepo.LatestPhoneVerification(db, userID)
	if err != nil {
		return apperrors.ErrInvalidVerificationCode
	}

	cfg := config.GetConfig()

	if verification.ConsumedAt != nil ||
		time.Now().After(verification.ExpiresAt) ||
		verification.Attempts >= cfg.Verification.MaxAttempts {
		return apperrors.ErrInvalidVerificationCode
	}

	verification.Attempts++

	if verification.Code != code {
		if err := s.userRepo.SavePhoneVerification(db, verification); err != nil {
			return apperrors.PersistenceError(err)
		}
		return apperrors.ErrInvalidVerificationCode
	}

	now := time.Now()
	verification.ConsumedAt = &now
	if err := s.userRepo.SavePhoneVerification(db, verification); err != nil {
		return apperrors.PersistenceError(err)
	}

	return s.userRepo.SetPhoneVerified(db, userID, verification.Phone)
}

// --- Helper functions ---

// issueTokens выпускает пару access+refresh и собирает ответ входа
func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         BuildUserResponse(user, true),
	}, nil
}

// createRefreshToken создает и сохраняет refresh token
func (s *AuthServiceImpl) createRefreshToken(db *gorm.DB, userID string) (string, error) {
	refreshToken := generateRandomToken()
	refreshTokenExp := time.Now().Add(7 * 24 * time.Hour) // 7 дней

	tokenModel := &models.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: refreshTokenExp,
	}
	if err := s.userRepo.CreateRefreshToken(db, tokenModel); err != nil {
		return "", err
	}
	return refreshToken, nil
}

// checkUserStatus проверяет статус пользователя
func (s *AuthServiceImpl) checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusSuspended:
		return apperrors.ErrUserSuspended
	case models.UserStatusBanned:
		return apperrors.ErrUserBanned
	}
	return nil
}

func (s *AuthServiceImpl) sendVerificationEmail(to, token string) {
	if err := s.emailProvider.SendVerification(to, token); err != nil {
		logger.Error("failed to send verification email", "email", to, "error", err)
	}
}

func (s *AuthServiceImpl) sendPasswordResetEmail(to, token string) {
	if err := s.emailProvider.SendPasswordReset(to, token); err != nil {
		logger.Error("failed to send password reset email", "email", to, "error", err)
	}
}

// generateRandomToken возвращает 32 байта энтропии в hex
func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand не отказывает на поддерживаемых платформах
		panic(err)
	}
	return hex.EncodeToString(b)
}

// generateNumericCode возвращает n случайных десятичных цифр
func generateNumericCode(n int) (string, error) {
	code := ""
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", d.Int64())
	}
	return code, nil
}
