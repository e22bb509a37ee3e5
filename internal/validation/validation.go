package validation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

var (
	ErrInvalidDir     = errors.New("搜索目录不存在")
	ErrInvalidKeyword = errors.New("搜索关键字为空")
)

// Input 是运行前入口收集的输入。
type Input struct {
	Dir     string `json:"dir" validate:"required,existing_dir"`
	Keyword string `json:"keyword" validate:"required,keyword"`
}

type Validator struct {
	validator *validator.Validate
	tagErrs   map[string]error
}

func New() (*Validator, error) {
	v := &Validator{
		validator: validator.New(),
		tagErrs: map[string]error{
			"existing_dir": ErrInvalidDir,
			"keyword":      ErrInvalidKeyword,
		},
	}
	v.validator.RegisterTagNameFunc(useJSONFieldNames)
	funcs := map[string]validator.Func{
		"existing_dir": isExistingDir,
		"keyword":      isKeyword,
	}
	for tag, fn := range funcs {
		if err := v.validator.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Validate 校验 in，把第一个失败的 tag 映射为可读错误。
func (v *Validator) Validate(in Input) error {
	err := v.validator.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if e, ok := v.tagErrs[fe.Tag()]; ok {
			return fmt.Errorf("%w: %q", e, fe.Value())
		}
		if fe.Tag() == "required" {
			return fmt.Errorf("缺少必填字段 '%s'", fe.Field())
		}
	}
	return err
}

func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func isExistingDir(fl validator.FieldLevel) bool {
	p := strings.TrimSpace(fl.Field().String())
	if p == "" || strings.Contains(p, "\x00") {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

func isKeyword(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
