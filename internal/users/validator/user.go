package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	v := validator.New()

	if err := v.RegisterValidation("person_name", validatePersonName); err != nil {
		log.Fatal("Failed to register 'person_name' validator", "error", err)
	}
	if err := v.RegisterValidation("phone_number", validatePhoneNumber); err != nil {
		log.Fatal("Failed to register 'phone_number' validator", "error", err)
	}
	if err := v.RegisterValidation("strong_password", validateStrongPassword); err != nil {
		log.Fatal("Failed to register 'strong_password' validator", "error", err)
	}

	return &UserValidator{
		validate: v,
		logger:   log,
	}
}

// validatePersonName rejects names containing digits. Emptiness after
// trimming is covered by the required tag since the service trims first.
func validatePersonName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	for _, r := range name {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return strings.TrimSpace(name) != ""
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// validateStrongPassword requires at least 8 characters with at least one
// letter and one digit.
func validateStrongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (v *UserValidator) ValidateRegistration(in *model.UserRegistration) error {
	return v.translate(v.validate.Struct(in))
}

// profile mirrors the registration tags for the fields a patch can touch,
// so merged updates are held to the same rules as registration.
type profile struct {
	FirstName string `validate:"required,max=100,person_name"`
	LastName  string `validate:"required,person_name"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,phone_number"`
}

func (v *UserValidator) ValidateProfile(user *model.User) error {
	return v.translate(v.validate.Struct(&profile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}))
}

type passwordOnly struct {
	Password string `validate:"required,strong_password"`
}

func (v *UserValidator) ValidatePassword(password string) error {
	return v.translate(v.validate.Struct(&passwordOnly{Password: password}))
}

func (v *UserValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
		case "email":
			message = "email must be a valid address"
		case "person_name":
			message = fmt.Sprintf("%s must not contain digits", fieldErr.Field())
		case "phone_number":
			message = "phone must be 9-15 digits with an optional leading +"
		case "strong_password":
			message = "password must be at least 8 characters with at least one letter and one digit"
		}
		out = append(out, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}
	return out
}
