package main

import (
	"context"
	"net/http"

	"github.com/restory/restory/internal/accountservice"
)

type contextKey string

const accountContextKey = contextKey("account")

func (app *application) createAccountContext(r *http.Request, account *accountservice.Account) *http.Request {
	ctx := context.WithValue(r.Context(), accountContextKey, account)
	return r.WithContext(ctx)
}

func (app *application) getAccountContext(r *http.Request) *accountservice.Account {
	account, ok := r.Context().Value(accountContextKey).(*accountservice.Account)
	if !ok {
		return nil
	}
	return account
}
