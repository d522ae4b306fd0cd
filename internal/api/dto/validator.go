package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/gymsocial/internal/model"
)

// RegisterValidators 向 gin 的校验器注册自定义 tag，启动时调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("relship", validateRelship)
}

func validateRelship(fl validator.FieldLevel) bool {
	return model.Relship(fl.Field().String()).Valid()
}
