package api4invites

import (
	"context"
	"net/http"

	"github.com/pquerna/ffjson/ffjson"
	"github.com/strongo/log"
)

// ContextHandler is an HTTP handler that receives a request-scoped context.
type ContextHandler func(c context.Context, w http.ResponseWriter, r *http.Request)

// HandleWithContext adapts a ContextHandler to a plain http.HandlerFunc.
var HandleWithContext = func(handler ContextHandler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(r.Context(), w, r)
	}
}

func OptionsHandler(_ context.Context, w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Add("Access-Control-Allow-Origin", "*")
	header.Add("Access-Control-Allow-Headers", "Authorization, Content-Type")
	header.Add("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusOK)
}

func jsonToResponse(c context.Context, w http.ResponseWriter, v interface{}) {
	header := w.Header()
	if buffer, err := ffjson.Marshal(v); err != nil {
		log.Errorf(c, err.Error())
		header.Add("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
	} else {
		markResponseAsJson(header)
		_, err := w.Write(buffer)
		ffjson.Pool(buffer)
		if err != nil {
			log.Errorf(c, "Failed to write response: %v", err)
		}
	}
}

func ErrorAsJson(c context.Context, w http.ResponseWriter, status int, err error) {
	if status == 0 {
		panic("status == 0")
	}
	if status == http.StatusInternalServerError {
		log.Errorf(c, "Error: %v", err.Error())
	} else {
		log.Infof(c, "Error: %v", err.Error())
	}
	markResponseAsJson(w.Header())
	w.WriteHeader(status)
	buffer, _ := ffjson.Marshal(map[string]string{"error": err.Error()})
	_, _ = w.Write(buffer)
	ffjson.Pool(buffer)
}

func BadRequestError(c context.Context, w http.ResponseWriter, err error) {
	ErrorAsJson(c, w, http.StatusBadRequest, err)
}

func InternalError(c context.Context, w http.ResponseWriter, err error) {
	ErrorAsJson(c, w, http.StatusInternalServerError, err)
}

func markResponseAsJson(header http.Header) {
	header.Add("Content-Type", "application/json")
	header.Add("Access-Control-Allow-Origin", "*")
}
