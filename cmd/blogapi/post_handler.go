package main

import (
	"errors"
	"net/http"

	"github.com/restory/restory/internal/authz"
	"github.com/restory/restory/internal/blogservice"
	"github.com/restory/restory/internal/common"
)

// requireObjectAccess evaluates the object rule of a policy. Anonymous callers
// get 401, authenticated callers that fail the rule get 403.
func (app *application) requireObjectAccess(w http.ResponseWriter, r *http.Request, policy authz.Policy, actor authz.Actor, ownerID int) bool {
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

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	posts, err := app.blogService.GetPosts(r.Context(), limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	if !authz.OwnerOnly.AllowCollection(r.Method, user.Actor()) {
		app.authenticationRequiredErrorResponse(w, r)
		return
	}

	var input blogservice.CreatePostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = user.ID

	post, err := app.blogService.CreatePost(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrGroupForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"group": "group does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updatePostRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
	Group *int    `json:"group"`
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	id, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOnly, user.Actor(), post.Author.ID) {
		return
	}

	var input updatePostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Text != nil {
		post.Text = *input.Text
	}
	if input.Image != nil {
		post.Image = input.Image
	}
	if input.Group != nil {
		post.GroupID = input.Group
	}

	err = app.blogService.UpdatePost(r.Context(), post)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrGroupForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"group": "group does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	id, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	post, err := app.blogService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.requireObjectAccess(w, r, authz.OwnerOnly, user.Actor(), post.Author.ID) {
		return
	}

	err = app.blogService.DeletePost(r.Context(), post.ID)
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
