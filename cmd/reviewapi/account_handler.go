package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/restory/restory/internal/accountservice"
	"github.com/restory/restory/internal/common"
)

func (app *application) listAccountsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	search := r.URL.Query().Get("search")

	accounts, err := app.accountService.ListAccounts(r.Context(), search, limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"users": accounts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createAccountHandler(w http.ResponseWriter, r *http.Request) {
	var input accountservice.CreateAccountRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	account, err := app.accountService.CreateAccount(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"user": account}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveUsername maps the reserved "me" alias to the caller. A non-admin
// addressing any other username is rejected; the second return value reports
// whether the caller addressed themselves.
func (app *application) resolveUsername(w http.ResponseWriter, r *http.Request) (string, bool, bool) {
	account := app.getAccountContext(r)
	username := app.readStringParam(r, "username")

	if strings.EqualFold(username, "me") {
		return account.Username, true, true
	}

	if !account.Actor().IsAdmin() {
		app.forbiddenErrorResponse(w, r)
		return "", false, false
	}

	return username, false, true
}

func (app *application) getAccountHandler(w http.ResponseWriter, r *http.Request) {
	username, _, ok := app.resolveUsername(w, r)
	if !ok {
		return
	}

	account, err := app.accountService.GetAccount(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": account}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateAccountHandler(w http.ResponseWriter, r *http.Request) {
	username, self, ok := app.resolveUsername(w, r)
	if !ok {
		return
	}

	var input accountservice.UpdateAccountRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// self-service updates never change the role
	account, err := app.accountService.UpdateAccount(r.Context(), username, &input, !self)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, accountservice.ErrEditConflict):
			app.editConflictErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": account}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	username, self, ok := app.resolveUsername(w, r)
	if !ok {
		return
	}

	// accounts cannot delete themselves through the alias
	if self {
		app.methodNotAllowedErrorResponse(w, r)
		return
	}

	err := app.accountService.DeleteAccount(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
