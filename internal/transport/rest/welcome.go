package rest

import "net/http"

// Welcome answers the root path so a browser pointed at the server sees
// that it is up.
func Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the user records API"})
}
