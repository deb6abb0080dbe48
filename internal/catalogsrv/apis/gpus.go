package apis

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

func listGPUs(r *http.Request) (*httpx.Response, error) {
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	gpus, aerr := s.ListGPUs(r.Context())
	if aerr != nil {
		return nil, aerr
	}
	rsp := make([]api.Device, 0, len(gpus))
	for _, g := range gpus {
		rsp = append(rsp, toDevice(g))
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rsp,
	}, nil
}

func getGPU(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	gpu, aerr := s.GetGPU(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toDevice(*gpu),
	}, nil
}

func createGPU(r *http.Request) (*httpx.Response, error) {
	var req api.DeviceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	gpu := gpuFromRequest(0, req)
	if aerr := s.CreateGPU(r.Context(), gpu); aerr != nil {
		return nil, aerr
	}
	log.Ctx(r.Context()).Info().Int64("gpu_id", gpu.ID).Str("name", gpu.Name).Msg("gpu created")
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   itemLocation("gpus", gpu.ID),
		Response:   toDevice(*gpu),
	}, nil
}

// updateGPU replaces the name, manufacturer and release year of the gpu.
func updateGPU(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	var req api.DeviceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	gpu := gpuFromRequest(id, req)
	if aerr := s.UpdateGPU(r.Context(), gpu); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toDevice(*gpu),
	}, nil
}

func deleteGPU(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	if aerr := s.DeleteGPU(r.Context(), id); aerr != nil {
		return nil, aerr
	}
	log.Ctx(r.Context()).Info().Int64("gpu_id", id).Msg("gpu deleted")
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   api.MessageRsp{Message: "GPU deleted successfully"},
	}, nil
}
