package accountservice

import (
	"database/sql"
	"time"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
)

var (
	AnonymousAccount = Account{}
)

// Account is a review-platform identity. There is no password: signup hands
// out a verification code and the code is exchanged for a signed access token.
type Account struct {
	ID        int        `json:"-"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      authz.Role `json:"role"`
	Staff     bool       `json:"-"`
	Superuser bool       `json:"-"`
	Version   int        `json:"-"`
	CreatedAt time.Time  `json:"-"`
}

func (a *Account) IsAnonymous() bool {
	return a == &AnonymousAccount
}

// Actor adapts an account to the shape the permission tables evaluate.
func (a *Account) Actor() authz.Actor {
	if a.IsAnonymous() {
		return authz.Anonymous
	}
	return authz.Actor{
		Authenticated: true,
		UserID:        a.ID,
		Role:          a.Role,
		Staff:         a.Staff,
		Superuser:     a.Superuser,
	}
}

type AccountModel struct {
	db *sql.DB
}

type AccountService struct {
	m     *AccountModel
	mb    common.MessageProducer
	codes *CodeGenerator
	jwt   *TokenIssuer
}
