package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/common"
	"github.com/restory/restory/internal/reviewservice"
)

func (app *application) listReviewCommentsHandler(w http.ResponseWriter, r *http.Request) {
	review := app.resolveReview(w, r)
	if review == nil {
		return
	}

	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.reviewService.ListComments(r.Context(), review.ID, limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createReviewCommentHandler(w http.ResponseWriter, r *http.Request) {
	account := app.getAccountContext(r)

	review := app.resolveReview(w, r)
	if review == nil {
		return
	}

	var input reviewservice.CreateCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = account.ID
	input.ReviewID = review.ID

	comment, err := app.reviewService.CreateComment(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveReviewComment loads the comment scoped to its review, which is in
// turn scoped to its title. Any mismatch along the path is a 404.
func (app *application) resolveReviewComment(w http.ResponseWriter, r *http.Request) *reviewservice.ReviewComment {
	review := app.resolveReview(w, r)
	if review == nil {
		return nil
	}

	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil
	}

	comment, err := app.reviewService.GetComment(r.Context(), review.ID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil
	}

	return comment
}

func (app *application) getReviewCommentHandler(w http.ResponseWriter, r *http.Request) {
	comment := app.resolveReviewComment(w, r)
	if comment == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateReviewCommentRequest struct {
	Text string `json:"text"`
}

func (app *application) updateReviewCommentHandler(w http.ResponseWriter, r *http.Request) {
	comment := app.resolveReviewComment(w, r)
	if comment == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOrStaffOrModerator, comment.AuthorID) {
		return
	}

	var input updateReviewCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comment, err = app.reviewService.UpdateComment(r.Context(), comment, input.Text)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteReviewCommentHandler(w http.ResponseWriter, r *http.Request) {
	comment := app.resolveReviewComment(w, r)
	if comment == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOrStaffOrModerator, comment.AuthorID) {
		return
	}

	err := app.reviewService.DeleteComment(r.Context(), comment.ReviewID, comment.ID)
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
