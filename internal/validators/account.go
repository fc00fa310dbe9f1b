package validators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/models"
)

const tagEmailShape = "email_shape"

// emailChar is any character except "@" and whitespace. RE2's \s is ASCII
// only, so vertical tab, Unicode separators and the BOM are listed too.
const emailChar = `[^\s\v\p{Z}\x{FEFF}@]`

// emailPattern accepts anything shaped like local@domain.tld without
// whitespace. It is looser than RFC 5322.
var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// registrationInput is the typed view of [models.RegistrationForm].
// Age is nil when the raw value is empty or not an integer.
type registrationInput struct {
	Username string `validate:"min=3"`
	Email    string `validate:"email_shape"`
	Password string `validate:"min=6"`
	Age      *int   `validate:"required,min=13,max=120"`
}

type profileInput struct {
	Username *string `validate:"omitnil,min=3"`
	Bio      *string `validate:"omitnil,max=160"`
}

// fieldNames maps form field names to struct field names of the inputs.
var fieldNames = map[string]string{
	models.FieldUsername: "Username",
	models.FieldEmail:    "Email",
	models.FieldPassword: "Password",
	models.FieldAge:      "Age",
	models.FieldBio:      "Bio",
}

// AccountValidator validates [models.RegistrationForm] and
// [models.ProfileUpdate] values.
type AccountValidator struct {
	validate *validator.Validate
}

func NewAccountValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// error only on programmer mistake: the tag is a constant
	if err := v.RegisterValidation(tagEmailShape, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &AccountValidator{validate: v}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegistrationForm:
		return v.validateRegistration(ctx, value, fields...)
	case *models.RegistrationForm:
		return v.validateRegistration(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfile(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfile(ctx, *value, fields...)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
}

func (v *AccountValidator) validateRegistration(ctx context.Context, form models.RegistrationForm, fields ...string) error {
	input := registrationInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Age:      parseAge(form.Age),
	}
	return v.run(ctx, input, fields)
}

func (v *AccountValidator) validateProfile(ctx context.Context, update models.ProfileUpdate, fields ...string) error {
	input := profileInput{
		Username: update.Username,
		Bio:      update.Bio,
	}
	return v.run(ctx, input, fields)
}

func (v *AccountValidator) run(ctx context.Context, input any, fields []string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, input)
	} else {
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			name, ok := fieldNames[f]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			names = append(names, name)
		}
		err = v.validate.StructPartialCtx(ctx, input, names...)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) models.FieldError {
	switch fe.StructField() {
	case "Username":
		return models.FieldError{Field: models.FieldUsername, Message: app.MsgUsernameTooShort}
	case "Email":
		return models.FieldError{Field: models.FieldEmail, Message: app.MsgInvalidEmail}
	case "Password":
		return models.FieldError{Field: models.FieldPassword, Message: app.MsgPasswordTooShort}
	case "Bio":
		return models.FieldError{Field: models.FieldBio, Message: app.MsgBioTooLong}
	case "Age":
		switch fe.Tag() {
		case "required":
			return models.FieldError{Field: models.FieldAge, Message: app.MsgAgeRequired}
		case "min":
			return models.FieldError{Field: models.FieldAge, Message: app.MsgAgeTooYoung}
		default:
			return models.FieldError{Field: models.FieldAge, Message: app.MsgAgeInvalid}
		}
	}

	return models.FieldError{Field: strings.ToLower(fe.Field()), Message: fe.Error()}
}

// parseAge returns nil for empty or non-integer input.
func parseAge(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
