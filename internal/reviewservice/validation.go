package reviewservice

import (
	"time"
	"unicode/utf8"

	"github.com/restory/restory/internal/common"
)

func validateTermName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(utf8.RuneCountInString(name) <= 256, "name", "must not be more than 256 characters long")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(utf8.RuneCountInString(slug) <= maxSlugLength, "slug", "must not be more than 50 characters long")
}

func validateTitleName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(utf8.RuneCountInString(name) <= 256, "name", "must not be more than 256 characters long")
}

func validateYear(v *common.Validator, year *int) {
	if year == nil {
		return
	}
	v.Check(v.CheckIntRange(*year, 1, time.Now().Year()), "year", "must be between 1 and the current year")
}

func validateText(v *common.Validator, text string) {
	v.Check(text != "", "text", "must be provided")
}

func validateScore(v *common.Validator, score int) {
	v.Check(v.CheckIntRange(score, 1, 10), "score", "must be between 1 and 10")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
