package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
)

// enum is implemented by the status and level types in models.
type enum interface {
	Valid() bool
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so the details match what callers sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// "enum" accepts any value whose Valid method reports true.
		_ = validate.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			v, ok := fl.Field().Interface().(enum)
			if !ok {
				return false
			}
			return v.Valid()
		})

		// "basename" accepts file references whose last element names a file.
		_ = validate.RegisterValidation("basename", func(fl validator.FieldLevel) bool {
			return models.BaseName(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates s against its `validate` tags and returns a
// ValidationError listing every failing field.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return apperrors.Validation(err.Error(), nil)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	return apperrors.Validation("invalid "+entityName(s), fields)
}

// Enum validates a single enum value outside of a struct.
func Enum(field string, v enum) error {
	if v.Valid() {
		return nil
	}
	return apperrors.Validation("invalid "+field, map[string]string{field: "enum"})
}

func entityName(s interface{}) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := strings.TrimSuffix(t.Name(), "Input")
	for _, prefix := range []string{"Create", "Update", "Upload"} {
		name = strings.TrimPrefix(name, prefix)
	}
	return strings.ToLower(name)
}
