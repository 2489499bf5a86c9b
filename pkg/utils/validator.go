package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domainShop "stall-marketplace/internal/domain/shop"
)

var (
	validate      *validator.Validate
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("shopName") rather than Go field names in messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("user_type", validateUserType); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("username", validateUsername); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("shop_category", validateShopCategory); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessage flattens validator errors into one human-readable sentence.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "user_type":
		return fmt.Sprintf("%s must be customer or seller", field)
	case "shop_category":
		return fmt.Sprintf("%s must be one of [%s]", field, shopCategoryList())
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits, '.', '_' and '-'", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateUserType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "customer", "seller":
		return true
	}
	return false
}

func validateShopCategory(fl validator.FieldLevel) bool {
	return domainShop.Category(fl.Field().String()).Valid()
}

func shopCategoryList() string {
	names := make([]string, len(domainShop.Categories))
	for i, c := range domainShop.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, " ")
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}
