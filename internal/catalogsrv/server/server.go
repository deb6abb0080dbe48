package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/apis"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/config"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db"
	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
	"github.com/gpucatalog/gpucatalog/internal/common/logtrace"
	commonmiddleware "github.com/gpucatalog/gpucatalog/internal/common/middleware"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

const serverVersion = "GPU Catalog Server: 0.1.0"

type CatalogServer struct {
	Router *chi.Mux
	store  db.Store
}

func CreateNewServer(store db.Store) (*CatalogServer, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	s := &CatalogServer{store: store}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *CatalogServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(s.HandleCORS())
	}
	s.Router.Route("/", s.mountResourceHandlers)
	if logtrace.IsTraceEnabled() {
		//print all the routes in the router by transversing the tree and printing the patterns
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			log.Trace().Str("method", method).Str("route", route).Msg("route")
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			log.Error().Err(err).Msg("unable to walk routes")
		}
	}
}

func (s *CatalogServer) mountResourceHandlers(r chi.Router) {
	r.Use(db.LoadStore(s.store))
	r.Get("/version", s.getVersion)
	apis.Router(r)
}

func (s *CatalogServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &api.GetVersionRsp{
		ServerVersion: serverVersion,
		ApiVersion:    api.ApiVersion_1_0,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

// HandleCORS allows the configured origins to call the API from a browser.
func (s *CatalogServer) HandleCORS() func(http.Handler) http.Handler {
	origins := config.Config().CORSOrigin
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders: []string{"Location", commonmiddleware.RequestIDHeader},
		MaxAge:         300,
	})
}
