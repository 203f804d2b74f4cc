package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/blogservice"
)

func (app *application) listGroupsHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := app.blogService.GetGroups(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"groups": groups}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getGroupHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "group_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	group, err := app.blogService.GetGroupByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"group": group}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
