package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// posts
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts", app.requireActivatedUser(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:post_id", app.getPostHandler)
	router.HandlerFunc(http.MethodPut, "/v1/posts/:post_id", app.requireActivatedUser(app.updatePostHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/posts/:post_id", app.requireActivatedUser(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:post_id", app.requireActivatedUser(app.deletePostHandler))

	// groups are read only
	router.HandlerFunc(http.MethodGet, "/v1/groups", app.listGroupsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/groups/:group_id", app.getGroupHandler)

	// comments
	router.HandlerFunc(http.MethodGet, "/v1/posts/:post_id/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:post_id/comments", app.requireActivatedUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:post_id/comments/:comment_id", app.getCommentHandler)
	router.HandlerFunc(http.MethodPut, "/v1/posts/:post_id/comments/:comment_id", app.requireActivatedUser(app.updateCommentHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/posts/:post_id/comments/:comment_id", app.requireActivatedUser(app.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:post_id/comments/:comment_id", app.requireActivatedUser(app.deleteCommentHandler))

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
