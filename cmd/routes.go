package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Ranking feed; registered before /apartments/:id so "ws" is not taken for an id.
	mux.Get("/apartments/ws", alice.New(app.recoverPanic).ThenFunc(app.rankingHub.ServeWS))

	// Apartments
	mux.Get("/apartments/vote/:id", standardMiddleware.ThenFunc(app.apartmentHandler.VoteApartment))
	mux.Post("/apartments/review/:id", standardMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Post("/apartments/new", authMiddleware.ThenFunc(app.apartmentHandler.CreateApartment))
	mux.Get("/apartments/:id", standardMiddleware.ThenFunc(app.apartmentHandler.GetApartmentByID))
	mux.Get("/apartments", standardMiddleware.ThenFunc(app.apartmentHandler.GetApartments))

	// Services catalog
	mux.Get("/services", standardMiddleware.ThenFunc(app.apartmentHandler.GetServiceTags))

	// Attachments stored on local disk
	if app.uploadDir != "" {
		prefix := app.uploadPrefix + "/"
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(app.uploadDir)))
		mux.Get(prefix, alice.New(app.recoverPanic, secureHeaders).Then(files))
	}

	mux.Get("/metrics", app.metrics.Handler())

	return mux
}
