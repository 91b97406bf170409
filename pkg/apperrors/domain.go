package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок приложения.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & User Status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInvalidVerificationCode - код подтверждения телефона неверен или истек.
var ErrInvalidVerificationCode = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired verification code",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Your account has been banned",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Swipes & Matches ---

// ErrSelfSwipe - пользователь не может свайпать сам себя.
var ErrSelfSwipe = New(
	CodeInvalidOperation,
	"swipe",
	"You cannot swipe on yourself",
	http.StatusBadRequest,
)

var ErrInvalidSwipeAction = New(
	CodeValidationFailed,
	"swipe",
	"Swipe action must be one of: like, pass, block",
	http.StatusBadRequest,
)

var ErrMatchNotFound = New(
	CodeNotFound,
	"match",
	"Match not found",
	http.StatusNotFound,
)

// ErrMatchInactive - пара расформирована, переписка закрыта.
var ErrMatchInactive = New(
	CodeInvalidOperation,
	"match",
	"Match is no longer active",
	http.StatusConflict,
)

var ErrNotMatchParticipant = New(
	CodeForbidden,
	"match",
	"You are not a participant of this match",
	http.StatusForbidden,
)

// --- Venues & Geo ---

var ErrVenueNotFound = New(
	CodeNotFound,
	"venue",
	"Venue not found",
	http.StatusNotFound,
)

// ErrOutsideVenue - координаты пользователя вне геозоны заведения.
var ErrOutsideVenue = New(
	CodeInvalidOperation,
	"venue",
	"You are outside of this venue's geofence",
	http.StatusConflict,
)

var ErrInvalidCoordinates = New(
	CodeValidationFailed,
	"geo",
	"Latitude must be in [-90, 90] and longitude in [-180, 180]",
	http.StatusBadRequest,
)
