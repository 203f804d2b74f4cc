package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
	"github.com/restory/restory/internal/reviewservice"
)

func (app *application) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	query := r.URL.Query()

	filter := reviewservice.TitleFilter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}

	if query.Get("year") != "" {
		year, err := strconv.Atoi(query.Get("year"))
		if err != nil {
			app.badRequestErrorResponse(w, r, errors.New("invalid year parameter"))
			return
		}
		filter.Year = &year
	}

	titles, err := app.reviewService.ListTitles(r.Context(), filter, limit, offset)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"titles": titles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	var input reviewservice.CreateTitleRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	title, err := app.reviewService.CreateTitle(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"title": title}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getTitleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	title, err := app.reviewService.GetTitle(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	id, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input reviewservice.UpdateTitleRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	title, err := app.reviewService.UpdateTitle(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	if !app.requireCollectionAccess(w, r, authz.AdminOrReadOnly) {
		return
	}

	id, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.reviewService.DeleteTitle(r.Context(), id)
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
