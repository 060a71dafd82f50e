package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var alphaNumSpace = regexp.MustCompile(`^[a-zA-Z0-9]([\w -]*[a-zA-Z0-9])?$`)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验器上注册自定义规则，重复调用无副作用
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = register(v)
	})
	return err
}

func register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation("alpha_num_space", validateAlphaNumSpace); err != nil {
		return err
	}
	return v.RegisterValidation("float", validateFloat)
}

// fieldName 错误信息中使用表单字段名
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func validateAlphaNumSpace(fl validator.FieldLevel) bool {
	return alphaNumSpace.MatchString(fl.Field().String())
}

func validateFloat(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// FieldErrors 把绑定错误转换为 {字段: 提示}
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, ok := out[name]; ok {
			continue
		}
		out[name] = message(name, fe)
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("The %s field is required.", field)
	case "alpha_num_space":
		return fmt.Sprintf("The %s should be alphanumeric, space, hypen, or underscore", field)
	case "float", "numeric":
		return fmt.Sprintf("The %s should be float only", field)
	case "latitude":
		return fmt.Sprintf("The %s is not latitude value", field)
	case "longitude":
		return fmt.Sprintf("The %s is not longitude value", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.TrimPrefix(field, "confirm_"))
	case "nefield":
		return fmt.Sprintf("The %s field must be different from %s.", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s must be a date in %s format.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
