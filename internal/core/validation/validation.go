package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Сообщения об ошибках полей
const (
	MsgBlank        = "can't be blank"
	MsgInvalid      = "is invalid"
	MsgTaken        = "has already been taken"
	MsgTooShort     = "is too short (minimum is 3 characters)"
	MsgTooLong      = "is too long (maximum is 72 characters)"
	MsgConfirmation = "doesn't match Password"
	MsgNotGreater   = "must be greater than date start"
)

const (
	// MinPasswordLength минимальная длина пароля
	MinPasswordLength = 3
	// MaxPasswordLength предел bcrypt в байтах, длиннее хэш не строится
	MaxPasswordLength = 72
)

var emailRegexp = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-]+(\.[a-z]+)*\.[a-z]+$`)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// Errors ошибки валидации: поле -> упорядоченный список сообщений
type Errors map[string][]string

// Add добавляет сообщение к полю
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has сообщает, есть ли у поля заданное сообщение
func (e Errors) Has(field, message string) bool {
	for _, m := range e[field] {
		if m == message {
			return true
		}
	}
	return false
}

// Err возвращает nil, если ошибок нет
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, strings.Join(e[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator проверяет поля пользователей и событий
type Validator struct {
	validate *validator.Validate
}

// New создает Validator с зарегистрированным тегом email_format
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		return emailRegexp.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Email проверяет наличие и формат email. Пустое значение дает оба сообщения.
func (v *Validator) Email(errs Errors, field, email string) {
	if v.validate.Var(email, "required") != nil {
		errs.Add(field, MsgBlank)
	}
	if v.validate.Var(email, "email_format") != nil {
		errs.Add(field, MsgInvalid)
	}
}

// Password проверяет пароль и его подтверждение
func (v *Validator) Password(errs Errors, password, confirmation string) {
	if v.validate.Var(password, "required") != nil {
		errs.Add("password", MsgBlank)
	} else if v.validate.Var(password, fmt.Sprintf("min=%d", MinPasswordLength)) != nil {
		errs.Add("password", MsgTooShort)
	} else if len(password) > MaxPasswordLength {
		errs.Add("password", MsgTooLong)
	}

	if v.validate.VarWithValue(confirmation, password, "eqfield") != nil {
		errs.Add("password_confirmation", MsgConfirmation)
	}
}

// Timestamp разбирает обязательную дату; при ошибке добавляет сообщение к полю
func (v *Validator) Timestamp(errs Errors, field, raw string) (time.Time, bool) {
	if v.validate.Var(strings.TrimSpace(raw), "required") != nil {
		errs.Add(field, MsgBlank)
		return time.Time{}, false
	}

	ts, err := ParseTimestamp(raw)
	if err != nil {
		errs.Add(field, MsgInvalid)
		return time.Time{}, false
	}
	return ts, true
}

// Chronology проверяет, что finish строго больше start
func (v *Validator) Chronology(errs Errors, start, finish time.Time) {
	if v.validate.VarWithValue(finish, start, "gtfield") != nil {
		errs.Add("date_finish", MsgNotGreater)
	}
}

// ParseTimestamp разбирает дату в одном из поддерживаемых форматов
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, raw)
}

// NormalizeEmail приводит email к каноническому виду
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
