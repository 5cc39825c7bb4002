package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/seasons", handler.Seasons)
	mux.HandleFunc("/seasons/", handler.Season)
	mux.HandleFunc("/players/", handler.PlayerProfile)
	return mux
}
