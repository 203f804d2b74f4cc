package accountservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
)

func NewAccountService(db *sql.DB, mb common.MessageProducer, codeSecret, jwtSecret string, jwtTTL time.Duration) *AccountService {
	return &AccountService{
		m:     NewAccountModel(db),
		mb:    mb,
		codes: NewCodeGenerator(codeSecret, 24*time.Hour, 2),
		jwt:   NewTokenIssuer(jwtSecret, jwtTTL),
	}
}

// SignUp registers a (username, email) identity and publishes a user.signup
// event carrying the verification code. Repeating the call with the same pair
// reissues the code; a pair that collides with a different existing identity
// fails validation without touching any row.
func (s *AccountService) SignUp(ctx context.Context, username, email string) (*Account, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	account, err := s.m.getByEmail(ctx, email)
	switch {
	case err == nil:
		if account.Username != username {
			v.AddError("email", "a user with this email already exists")
			return nil, v.ValidationError()
		}
	case errors.Is(err, ErrNotFound):
		_, err := s.m.getByUsername(ctx, username)
		switch {
		case err == nil:
			v.AddError("username", "a user with this username already exists")
			return nil, v.ValidationError()
		case errors.Is(err, ErrNotFound):
		default:
			return nil, err
		}

		account = &Account{Username: username, Email: email, Role: authz.RoleUser}
		if err := s.m.insert(ctx, account); err != nil {
			// A concurrent signup may win the insert race; surface it
			// the same way as the pre-check.
			switch {
			case errors.Is(err, ErrDuplicateUsername):
				v.AddError("username", "a user with this username already exists")
				return nil, v.ValidationError()
			case errors.Is(err, ErrDuplicateEmail):
				v.AddError("email", "a user with this email already exists")
				return nil, v.ValidationError()
			default:
				return nil, err
			}
		}
	default:
		return nil, err
	}

	code := s.codes.Generate(account)

	data := struct {
		Email    string
		Username string
		Code     string
	}{
		Email:    account.Email,
		Username: account.Username,
		Code:     code,
	}

	msg, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, msg, common.UserSignupKey, common.UserExchange); err != nil {
		return nil, err
	}

	return account, nil
}

// IssueToken exchanges a verification code for a signed access token. An
// unknown username is reported as ErrNotFound so the handler can answer 404,
// matching the signup flow's contract; a bad code is a validation failure.
func (s *AccountService) IssueToken(ctx context.Context, username, code string) (string, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateCode(v, code)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	account, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !s.codes.Verify(account, code) {
		v.AddError("verification_code", "invalid verification code")
		return "", v.ValidationError()
	}

	return s.jwt.Issue(account)
}

// Authenticate parses a bearer token and loads the current account row, so
// role changes take effect on the next request.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*Account, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	return s.m.getByUsername(ctx, claims.Subject)
}

func (s *AccountService) GetAccount(ctx context.Context, username string) (*Account, error) {
	return s.m.getByUsername(ctx, username)
}

func (s *AccountService) ListAccounts(ctx context.Context, search string, limit, offset *int) ([]Account, error) {
	l, o := 10, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return s.m.list(ctx, search, l, o)
}

type CreateAccountRequest struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      authz.Role `json:"role"`
}

// CreateAccount is the admin-surface create: unlike SignUp it may set a role.
func (s *AccountService) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if req.Role == "" {
		req.Role = authz.RoleUser
	}

	v := common.NewValidator()
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validateRole(v, req.Role)
	validateName(v, req.FirstName, "first_name")
	validateName(v, req.LastName, "last_name")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	account := &Account{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}

	if err := s.m.insert(ctx, account); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			v.AddError("username", "a user with this username already exists")
			return nil, v.ValidationError()
		case errors.Is(err, ErrDuplicateEmail):
			v.AddError("email", "a user with this email already exists")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	return account, nil
}

type UpdateAccountRequest struct {
	Email     *string     `json:"email"`
	FirstName *string     `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Bio       *string     `json:"bio"`
	Role      *authz.Role `json:"role"`
}

// UpdateAccount applies a partial update. Role changes are only honored when
// allowRole is set (the admin surface); the self-service endpoint passes
// false so the role field stays read-only for the account owner.
func (s *AccountService) UpdateAccount(ctx context.Context, username string, req *UpdateAccountRequest, allowRole bool) (*Account, error) {
	account, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Bio != nil {
		account.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		account.Role = *req.Role
	}

	v := common.NewValidator()
	validateEmail(v, account.Email)
	validateRole(v, account.Role)
	validateName(v, account.FirstName, "first_name")
	validateName(v, account.LastName, "last_name")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.update(ctx, account); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			v.AddError("email", "a user with this email already exists")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	return account, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, username string) error {
	return s.m.delete(ctx, username)
}
