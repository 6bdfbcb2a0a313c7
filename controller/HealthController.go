package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

type HealthController interface {
	HandleRootRequest(w http.ResponseWriter, r *http.Request)
	HandleLiveRequest(w http.ResponseWriter, r *http.Request)
	HandleReadyRequest(w http.ResponseWriter, r *http.Request)
}

func NewHealthController() HealthController {
	return &healthControllerImpl{}
}

type healthControllerImpl struct {
}

func (h healthControllerImpl) HandleRootRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Root end point is working fine!")); err != nil {
		log.Errorf("failed to write http response: %v", err)
	}
}

func (h healthControllerImpl) HandleLiveRequest(w http.ResponseWriter, r *http.Request) {
	// Just return 200 at this moment
	w.WriteHeader(http.StatusOK)
}

func (h healthControllerImpl) HandleReadyRequest(w http.ResponseWriter, r *http.Request) {
	// No local state to warm up, ready as soon as the server listens
	w.WriteHeader(http.StatusOK)
}
