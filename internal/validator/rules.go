package validator

import (
	"log"
	"strings"

	"amora_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Правило не зарегистрировалось - приложение не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-swipe-action': вердикт свайпа валиден
	mustRegister("is-swipe-action", validateSwipeAction)

	// 'is-gender': пол валиден
	mustRegister("is-gender", validateGender)
}

// --- Функции валидации ---

func validateSwipeAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения закрывает 'required'
	}
	return models.SwipeActionKind(value).IsValid()
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Gender(strings.ToLower(value)) {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return true
	default:
		return false
	}
}
