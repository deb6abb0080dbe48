package apis

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

const rootMessage = "GPU Database API"

func getRoot(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   api.MessageRsp{Message: rootMessage},
	}, nil
}

func listMemoryTypes(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   types.MemoryTypes(),
	}, nil
}

func listManufacturers(r *http.Request) (*httpx.Response, error) {
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	list, aerr := s.ListManufacturers(r.Context())
	if aerr != nil {
		return nil, aerr
	}
	rsp := make([]api.Manufacturer, 0, len(list))
	for _, m := range list {
		rsp = append(rsp, toManufacturer(m))
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rsp,
	}, nil
}

func createManufacturer(r *http.Request) (*httpx.Response, error) {
	var req api.ManufacturerRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	m := toModelManufacturer(req)
	if aerr := s.CreateManufacturer(r.Context(), m); aerr != nil {
		return nil, aerr
	}
	log.Ctx(r.Context()).Info().Int64("manufacturer_id", m.ID).Str("name", m.Name).Msg("manufacturer created")
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   itemLocation("manufacturers", m.ID),
		Response:   toManufacturer(*m),
	}, nil
}
