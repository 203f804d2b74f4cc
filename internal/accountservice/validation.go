package accountservice

import (
	"regexp"
	"strings"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
)

var (
	UsernameRX = regexp.MustCompile(`^[\w.@+-]+$`)
	EmailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// reservedUsername is the path segment the self-service endpoint claims.
const reservedUsername = "me"

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 1, 150), "username", "must not be more than 150 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters, numbers and @/./+/-/_ characters")
	v.Check(strings.ToLower(username) != reservedUsername, "username", `"me" is not a valid username`)
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.CheckStringLength(email, 3, 254), "email", "must not be more than 254 characters long")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validateRole(v *common.Validator, role authz.Role) {
	v.Check(v.In(string(role), string(authz.RoleUser), string(authz.RoleModerator), string(authz.RoleAdmin)), "role", "must be one of user, moderator or admin")
}

func validateName(v *common.Validator, name, field string) {
	v.Check(len(name) <= 150, field, "must not be more than 150 characters long")
}

func validateCode(v *common.Validator, code string) {
	v.Check(code != "", "verification_code", "must be provided")
	v.Check(len(code) == codeLength, "verification_code", "invalid verification code")
}
