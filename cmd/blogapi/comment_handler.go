package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/blogservice"
	"github.com/restory/restory/internal/common"
)

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	// the parent post must exist before its comments can be listed
	if _, err := app.blogService.GetPostByID(r.Context(), postID); err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
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

	comments, err := app.blogService.GetCommentsByPost(r.Context(), postID, limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	if !authz.OwnerOnly.AllowCollection(r.Method, user.Actor()) {
		app.authenticationRequiredErrorResponse(w, r)
		return
	}

	postID, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input blogservice.CreateCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = user.ID
	input.PostID = postID

	comment, err := app.blogService.CreateComment(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
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

// resolveComment reads both path params and loads the comment scoped to its
// post. A comment under a different post is treated as missing.
func (app *application) resolveComment(w http.ResponseWriter, r *http.Request) *blogservice.Comment {
	postID, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil
	}

	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil
	}

	comment, err := app.blogService.GetCommentByID(r.Context(), postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil
	}

	return comment
}

func (app *application) getCommentHandler(w http.ResponseWriter, r *http.Request) {
	comment := app.resolveComment(w, r)
	if comment == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateCommentRequest struct {
	Text *string `json:"text"`
}

func (app *application) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	comment := app.resolveComment(w, r)
	if comment == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOnly, user.Actor(), comment.Author.ID) {
		return
	}

	var input updateCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Text != nil {
		comment.Text = *input.Text
	}

	err = app.blogService.UpdateComment(r.Context(), comment)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
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

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	comment := app.resolveComment(w, r)
	if comment == nil {
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOnly, user.Actor(), comment.Author.ID) {
		return
	}

	err := app.blogService.DeleteComment(r.Context(), comment.PostID, comment.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
