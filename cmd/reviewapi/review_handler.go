package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
	"github.com/restory/restory/internal/reviewservice"
)

// requireObjectAccess evaluates the object rule of a policy. Anonymous callers
// get 401, authenticated callers that fail the rule get 403.
func (app *application) requireObjectAccess(w http.ResponseWriter, r *http.Request, policy authz.Policy, ownerID int) bool {
	actor := app.getAccountContext(r).Actor()
	if policy.AllowObject(r.Method, actor, ownerID) {
		return true
	}

	if !actor.Authenticated {
		app.authenticationRequiredErrorResponse(w, r)
	} else {
		app.forbiddenErrorResponse(w, r)
	}
	return false
}

func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	// the parent title must exist before its reviews can be listed
	if _, err := app.reviewService.GetTitle(r.Context(), titleID); err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	reviews, err := app.reviewService.ListReviews(r.Context(), titleID, limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"reviews": reviews}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	account := app.getAccountContext(r)

	titleID, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input reviewservice.CreateReviewRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = account.ID
	input.TitleID = titleID

	review, err := app.reviewService.CreateReview(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrDuplicateReview):
			app.failedValidationErrorResponse(w, r, map[string]string{"title": "you have already reviewed this title"})
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveReview reads both path params and loads the review scoped to its
// title. A review under a different title is treated as missing.
func (app *application) resolveReview(w http.ResponseWriter, r *http.Request) *reviewservice.Review {
	titleID, err := app.readIDParam(r, "title_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil
	}

	reviewID, err := app.readIDParam(r, "review_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil
	}

	review, err := app.reviewService.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil
	}

	return review
}

func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	review := app.resolveReview(w, r)
	if review == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	review := app.resolveReview(w, r)
	if review == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOrStaffOrModerator, review.AuthorID) {
		return
	}

	var input reviewservice.UpdateReviewRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	review, err = app.reviewService.UpdateReview(r.Context(), review, &input)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	review := app.resolveReview(w, r)
	if review == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOrStaffOrModerator, review.AuthorID) {
		return
	}

	err := app.reviewService.DeleteReview(r.Context(), review.TitleID, review.ID)
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
