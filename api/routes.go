package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"SellerPulse/api/constants"
	"SellerPulse/internal/logger"
	"SellerPulse/pkg/loadbalancer"
)

func NewRouter() *mux.Router {
	router := mux.NewRouter()

	analyticsLB := loadbalancer.NewLoadBalancer([]string{"http://localhost:7143"})
	router.PathPrefix("/analytics/").Handler(createReverseProxy(analyticsLB))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API Gateway is healthy"))
	}).Methods(http.MethodGet)

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, constants.ErrMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logr := logger.GlobalLogger
		msg := "[Gateway] [Error] " + r.URL.Path + " from " + r.RemoteAddr + " (route not found)"
		if logr != nil {
			logr.LogAudit(msg)
		} else {
			log.Println(msg)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 - Route not found"))
	})

	return router
}
