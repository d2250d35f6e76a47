package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/restaurant-discovery/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// "clock" - строка вида "HH:MM"
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
