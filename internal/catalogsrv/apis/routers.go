package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
)

var resourceObjectHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/",
		Handler: getRoot,
	},
	{
		Method:  http.MethodGet,
		Path:    "/memory-types/",
		Handler: listMemoryTypes,
	},
	{
		Method:  http.MethodGet,
		Path:    "/manufacturers/",
		Handler: listManufacturers,
	},
	{
		Method:  http.MethodPost,
		Path:    "/manufacturers/",
		Handler: createManufacturer,
	},
	{
		Method:  http.MethodGet,
		Path:    "/gpus/",
		Handler: listGPUs,
	},
	{
		Method:  http.MethodPost,
		Path:    "/gpus/",
		Handler: createGPU,
	},
	{
		Method:  http.MethodGet,
		Path:    "/gpus/{id}",
		Handler: getGPU,
	},
	{
		Method:  http.MethodPut,
		Path:    "/gpus/{id}",
		Handler: updateGPU,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/gpus/{id}",
		Handler: deleteGPU,
	},
	{
		Method:  http.MethodPost,
		Path:    "/specifications/",
		Handler: createSpecification,
	},
	{
		Method:  http.MethodPut,
		Path:    "/specifications/{id}",
		Handler: updateSpecification,
	},
	{
		Method:  http.MethodPost,
		Path:    "/prices/",
		Handler: createPrice,
	},
	{
		Method:  http.MethodPut,
		Path:    "/prices/{id}",
		Handler: updatePrice,
	},
}

// Router mounts the catalog handlers. The store must already be loaded into
// the request context.
func Router(r chi.Router) {
	for _, handler := range resourceObjectHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
