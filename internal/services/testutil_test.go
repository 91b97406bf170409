package services

import (
	"testing"

	"amora_backend/internal/config"
	"amora_backend/internal/email"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB поднимает изолированную in-memory базу на каждый тест.
// TranslateError обязателен: логика get-or-create матча опирается на
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PhoneVerification{},
		&models.SwipeAction{},
		&models.Match{},
		&models.Message{},
		&models.Venue{},
	))

	return db
}

// setupTestConfig подкладывает конфиг, чтобы сервисы не читали yaml.
func setupTestConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Verification.CodeTTL = 10
	cfg.Verification.MaxAttempts = 3
	cfg.Discovery.DefaultLimit = 20
	config.AppConfig = cfg
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         models.UserRoleMember,
		Status:       models.UserStatusActive,
		Name:         name,
		Age:          25,
		Gender:       models.GenderFemale,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestVenue(t *testing.T, db *gorm.DB, name string, lat, lng, radiusM float64) *models.Venue {
	t.Helper()

	venue := &models.Venue{
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		RadiusM:   radiusM,
		IsActive:  true,
	}
	require.NoError(t, db.Create(venue).Error)
	return venue
}

// newTestServices собирает сервисный слой с моками вместо инфраструктуры.
func newTestServices() (*repoSet, *ServiceContainer) {
	repos := &repoSet{
		users:    repositories.NewUserRepository(),
		swipes:   repositories.NewSwipeRepository(),
		matches:  repositories.NewMatchRepository(),
		venues:   repositories.NewVenueRepository(),
		messages: repositories.NewMessageRepository(),
	}

	container := NewServiceContainer(
		repos.users, repos.swipes, repos.matches, repos.venues, repos.messages,
		mockEmailProvider{}, mockCodeSender{}, nil,
	)
	return repos, container
}

type repoSet struct {
	users    repositories.UserRepository
	swipes   repositories.SwipeRepository
	matches  repositories.MatchRepository
	venues   repositories.VenueRepository
	messages repositories.MessageRepository
}

type mockEmailProvider struct{}

func (mockEmailProvider) Send(msg *email.Email) error                     { return nil }
func (mockEmailProvider) SendVerification(to string, token string) error  { return nil }
func (mockEmailProvider) SendPasswordReset(to string, token string) error { return nil }
func (mockEmailProvider) Validate() error                                 { return nil }
func (mockEmailProvider) Close() error                                    { return nil }

// mockCodeSender запоминает последний выданный код.
type mockCodeSender struct{}

func (mockCodeSender) SendCode(phone, code string) error { return nil }
