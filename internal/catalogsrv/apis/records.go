package apis

import (
	"net/http"

	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

func createSpecification(r *http.Request) (*httpx.Response, error) {
	var req api.SpecificationRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	spec := specificationFromRequest(0, req)
	if aerr := s.CreateSpecification(r.Context(), spec); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   itemLocation("specifications", spec.ID),
		Response:   toSpecification(*spec),
	}, nil
}

// updateSpecification replaces every field of the specification.
func updateSpecification(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	var req api.SpecificationRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	spec := specificationFromRequest(id, req)
	if aerr := s.UpdateSpecification(r.Context(), spec); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toSpecification(*spec),
	}, nil
}

func createPrice(r *http.Request) (*httpx.Response, error) {
	var req api.PriceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	price := priceFromRequest(0, req)
	if aerr := s.CreatePrice(r.Context(), price); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   itemLocation("prices", price.ID),
		Response:   toPrice(*price),
	}, nil
}

// updatePrice replaces the amount and date of the price.
func updatePrice(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	var req api.PriceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := getStore(r)
	if err != nil {
		return nil, err
	}
	price := priceFromRequest(id, req)
	if aerr := s.UpdatePrice(r.Context(), price); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toPrice(*price),
	}, nil
}
