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

	// signup and token issuance
	router.HandlerFunc(http.MethodPost, "/v1/auth/signup", app.signUpHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/token", app.issueTokenHandler)

	// account management; the :username segment also serves the reserved
	// "me" alias for the authenticated account
	router.HandlerFunc(http.MethodGet, "/v1/users", app.requireAdmin(app.listAccountsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users", app.requireAdmin(app.createAccountHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/:username", app.requireAuthAccount(app.getAccountHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/:username", app.requireAuthAccount(app.updateAccountHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:username", app.requireAuthAccount(app.deleteAccountHandler))

	// taxonomy is list, create, destroy only
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/categories", app.createCategoryHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:slug", app.deleteCategoryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodPost, "/v1/genres", app.createGenreHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/genres/:slug", app.deleteGenreHandler)

	// titles
	router.HandlerFunc(http.MethodGet, "/v1/titles", app.listTitlesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/titles", app.createTitleHandler)
	router.HandlerFunc(http.MethodGet, "/v1/titles/:title_id", app.getTitleHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:title_id", app.updateTitleHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:title_id", app.deleteTitleHandler)

	// reviews
	router.HandlerFunc(http.MethodGet, "/v1/titles/:title_id/reviews", app.listReviewsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/titles/:title_id/reviews", app.requireAuthAccount(app.createReviewHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:title_id/reviews/:review_id", app.getReviewHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:title_id/reviews/:review_id", app.requireAuthAccount(app.updateReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:title_id/reviews/:review_id", app.requireAuthAccount(app.deleteReviewHandler))

	// review comments
	router.HandlerFunc(http.MethodGet, "/v1/titles/:title_id/reviews/:review_id/comments", app.listReviewCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/titles/:title_id/reviews/:review_id/comments", app.requireAuthAccount(app.createReviewCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:title_id/reviews/:review_id/comments/:comment_id", app.getReviewCommentHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:title_id/reviews/:review_id/comments/:comment_id", app.requireAuthAccount(app.updateReviewCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:title_id/reviews/:review_id/comments/:comment_id", app.requireAuthAccount(app.deleteReviewCommentHandler))

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
