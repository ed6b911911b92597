package handler

import "net/http"

// Root is the service greeting, also used as a liveness probe.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Nakliye Kontrol Sistemi API"})
}
