package blogservice

import (
	"github.com/restory/restory/internal/common"
)

func validateText(v *common.Validator, text string) {
	v.Check(text != "", "text", "must be provided")
	v.Check(len(text) <= 20_000, "text", "must not be more than 20000 characters long")
}

func validateImage(v *common.Validator, image *string) {
	if image != nil {
		v.Check(*image != "", "image", "must not be empty when provided")
		v.Check(len(*image) <= 500, "image", "must not be more than 500 characters long")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
