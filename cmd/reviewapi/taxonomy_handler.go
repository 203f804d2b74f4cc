package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
	"github.com/restory/restory/internal/reviewservice"
)

// requireCollectionAccess evaluates the collection rule of a policy. Anonymous
// callers get 401, authenticated callers that fail the rule get 403.
func (app *application) requireCollectionAccess(w http.ResponseWriter, r *http.Request, policy authz.Policy) bool {
	actor := app.getAccountContext(r).Actor()
	if policy.AllowCollection(r.Method, actor) {
		return true
	}

	if !actor.Authenticated {
		app.authenticationRequiredErrorResponse(w, r)
	} else {
		app.forbiddenErrorResponse(w, r)
	}
	return false
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	categories, err := app.reviewService.ListCategories(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	var input reviewservice.CreateTermRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category, err := app.reviewService.CreateCategory(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"category": category}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	slug := app.readStringParam(r, "slug")

	err := app.reviewService.DeleteCategory(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	genres, err := app.reviewService.ListGenres(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"genres": genres}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	var input reviewservice.CreateTermRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	genre, err := app.reviewService.CreateGenre(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"genre": genre}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	slug := app.readStringParam(r, "slug")

	err := app.reviewService.DeleteGenre(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
