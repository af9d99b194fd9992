package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/places", handler.ListPlaces)
	mux.HandleFunc("GET /v1/groups", handler.ListGroups)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClub)
	mux.HandleFunc("GET /v1/clubs/{clubID}/players", handler.ListPlayersByClub)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/clubs/{clubID}/eligible-players", handler.ListEligiblePlayers)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/registered-players", handler.ListRegisteredPlayers)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))

	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))

	mux.Handle("POST /v1/competitions", RequireAuth(verifier, http.HandlerFunc(handler.CreateCompetition)))
	mux.Handle("PUT /v1/competitions/{competitionID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateCompetition)))

	mux.Handle("POST /v1/competitions/{competitionID}/roster/sync", RequireAuth(verifier, http.HandlerFunc(handler.SyncRoster)))
	mux.Handle("DELETE /v1/competitions/{competitionID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterPlayer)))
	mux.Handle("PUT /v1/competitions/{competitionID}/clubs/{clubID}/players/{registrationID}/captain", RequireAuth(verifier, http.HandlerFunc(handler.SetCaptain)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/eligibility-audit", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunEligibilityAuditJob)))
}
