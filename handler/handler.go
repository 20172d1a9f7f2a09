package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func Index(w http.ResponseWriter) {
	Message(w, http.StatusOK, "ytdigest index")
}

func Message(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	response := struct {
		Message string `json:"message"`
	}{
		Message: message,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		fmt.Fprintf(w, `{"message": %q}`, message)
		return
	}
	w.Write(body)
}

// Error writes {"error": message, "details": err}. Details are left out when
// err is nil.
func Error(w http.ResponseWriter, status int, message string, err error) {
	w.WriteHeader(status)
	response := struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
	}{
		Error: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		fmt.Fprintf(w, `{"error": %q, "details": %q}`, message, marshalErr.Error())
		return
	}
	w.Write(body)
}
