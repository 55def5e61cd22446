package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /health", handler.Healthz)
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{username}", handler.GetPlayerSummary)
	mux.HandleFunc("GET /v1/players/{username}/details", handler.GetPlayerDetails)
	mux.HandleFunc("GET /v1/players/{username}/presence", handler.GetPlayerPresence)
	mux.HandleFunc("GET /v1/players/{username}/live", handler.GetPlayerLiveGame)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("POST /v1/games/{gameID}/import", handler.ImportGame)
	mux.HandleFunc("GET /v1/clashroyale/players", handler.GetClashRoyalePlayer)
	mux.HandleFunc("GET /v1/versus", handler.GetVersus)
	mux.HandleFunc("GET /v1/shared/boards/{boardID}", handler.GetSharedBoard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/boards", RequireAuth(verifier, http.HandlerFunc(handler.ListBoards)))
	mux.Handle("POST /v1/boards", RequireAuth(verifier, http.HandlerFunc(handler.CreateBoard)))
	mux.Handle("PATCH /v1/boards/{boardID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateBoard)))
	mux.Handle("DELETE /v1/boards/{boardID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteBoard)))
	mux.Handle("GET /v1/boards/{boardID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListBoardMembers)))
	mux.Handle("POST /v1/boards/{boardID}/members", RequireAuth(verifier, http.HandlerFunc(handler.AddBoardMember)))
	mux.Handle("DELETE /v1/boards/{boardID}/members/{memberID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveBoardMember)))
	mux.Handle("GET /v1/boards/{boardID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListBoardMessages)))
	mux.Handle("POST /v1/boards/{boardID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.PostBoardMessage)))
	mux.Handle("GET /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.LinkMyProfile)))
}
