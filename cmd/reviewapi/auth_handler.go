package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/accountservice"
	"github.com/restory/restory/internal/common"
)

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// signUpHandler registers an account and emails a confirmation code. Repeating
// the request for an existing username and email pair resends the code.
func (app *application) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var input signUpRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	account, err := app.accountService.SignUp(r.Context(), input.Username, input.Email)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"username": account.Username, "email": account.Email}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type issueTokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// issueTokenHandler exchanges a confirmation code for a JWT. An unknown
// username is a 404, a wrong code a validation failure.
func (app *application) issueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input issueTokenRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.accountService.IssueToken(r.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
