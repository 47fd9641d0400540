// Package api exposes scenes, their measurements and projections over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phytogl/phytogl/internal/asset"
	"github.com/phytogl/phytogl/internal/auth"
	"github.com/phytogl/phytogl/internal/stream"
)

// Routes gathers what the router serves. Assets and Hub may be nil.
type Routes struct {
	Scenes *Handler
	Auth   *auth.Service
	Assets *asset.Handler
	Hub    *stream.Hub
	// Origins are full origins for CORS, e.g. "http://localhost:5173".
	Origins []string
	// WSOrigins are host patterns accepted on websocket upgrades.
	WSOrigins []string
}

func NewRouter(rt Routes) http.Handler {
	r := mux.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/sample", rt.Scenes.Sample).Methods("GET")

	if rt.Assets != nil {
		r.HandleFunc("/assets/upload", rt.Assets.Upload).Methods("POST")
		r.PathPrefix("/assets/").Handler(rt.Assets.Serve()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(rt.Auth.RequireBearer)

	api.HandleFunc("/me", auth.NewHandler(rt.Auth).Me).Methods("GET")
	api.HandleFunc("/scenes", rt.Scenes.List).Methods("GET")
	api.HandleFunc("/scenes", rt.Scenes.Create).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}", rt.Scenes.Get).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}", rt.Scenes.Delete).Methods("DELETE")
	api.HandleFunc("/scenes/{sceneId}/reports", rt.Scenes.Reports).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}/surface", rt.Scenes.Surface).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}/bbox", rt.Scenes.BoundingBox).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}/projection", rt.Scenes.Project).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}/projection.png", rt.Scenes.ProjectionImage).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}/ctrlpoints.svg", rt.Scenes.CtrlPoints).Methods("GET")
	if rt.Assets != nil {
		api.HandleFunc("/assets/{assetId}", func(w http.ResponseWriter, r *http.Request) {
			rt.Assets.Delete(w, r, mux.Vars(r)["assetId"])
		}).Methods("DELETE")
	}

	if rt.Hub != nil {
		r.HandleFunc("/ws/scenes/{sceneId}/projection", func(w http.ResponseWriter, r *http.Request) {
			subject, err := rt.Auth.QueryToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			rt.Hub.Serve(w, r, mux.Vars(r)["sceneId"], subject, rt.WSOrigins)
		})
	}

	return CORS(rt.Origins)(r)
}
