// Package catalogapi is a typed client for the catalog service REST surface.
package catalogapi

import (
	"context"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/gpucatalog/gpucatalog/internal/common/httpclient"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	resourceManufacturers  = "manufacturers"
	resourceGPUs           = "gpus"
	resourceSpecifications = "specifications"
	resourcePrices         = "prices"
)

// Client issues catalog service calls over an httpclient implementation.
type Client struct {
	http httpclient.HTTPClientInterface
}

func New(c httpclient.HTTPClientInterface) *Client {
	return &Client{http: c}
}

func (c *Client) ListManufacturers(ctx context.Context) ([]api.Manufacturer, error) {
	var rsp []api.Manufacturer
	if err := c.do(ctx, http.MethodGet, httpclient.CollectionPath(resourceManufacturers), nil, &rsp); err != nil {
		return nil, err
	}
	return rsp, nil
}

func (c *Client) ListGPUs(ctx context.Context) ([]api.Device, error) {
	var rsp []api.Device
	if err := c.do(ctx, http.MethodGet, httpclient.CollectionPath(resourceGPUs), nil, &rsp); err != nil {
		return nil, err
	}
	return rsp, nil
}

func (c *Client) GetGPU(ctx context.Context, id int64) (*api.Device, error) {
	var rsp api.Device
	if err := c.do(ctx, http.MethodGet, itemPath(resourceGPUs, id), nil, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) CreateGPU(ctx context.Context, req api.DeviceRequest) (*api.Device, error) {
	var rsp api.Device
	if err := c.do(ctx, http.MethodPost, httpclient.CollectionPath(resourceGPUs), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) UpdateGPU(ctx context.Context, id int64, req api.DeviceRequest) (*api.Device, error) {
	var rsp api.Device
	if err := c.do(ctx, http.MethodPut, itemPath(resourceGPUs, id), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// DeleteGPU removes a device. The response body is ignored.
func (c *Client) DeleteGPU(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(resourceGPUs, id), nil, nil)
}

func (c *Client) CreateSpecification(ctx context.Context, req api.SpecificationRequest) (*api.Specification, error) {
	var rsp api.Specification
	if err := c.do(ctx, http.MethodPost, httpclient.CollectionPath(resourceSpecifications), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) UpdateSpecification(ctx context.Context, id int64, req api.SpecificationRequest) (*api.Specification, error) {
	var rsp api.Specification
	if err := c.do(ctx, http.MethodPut, itemPath(resourceSpecifications, id), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) CreatePrice(ctx context.Context, req api.PriceRequest) (*api.Price, error) {
	var rsp api.Price
	if err := c.do(ctx, http.MethodPost, httpclient.CollectionPath(resourcePrices), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

func (c *Client) UpdatePrice(ctx context.Context, id int64, req api.PriceRequest) (*api.Price, error) {
	var rsp api.Price
	if err := c.do(ctx, http.MethodPut, itemPath(resourcePrices, id), req, &rsp); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// do encodes reqObj, performs the call and decodes the body into rspObj.
// A nil reqObj sends no body; a nil rspObj skips decoding.
func (c *Client) do(ctx context.Context, method, path string, reqObj any, rspObj any) error {
	opts := httpclient.RequestOptions{
		Method: method,
		Path:   path,
	}
	if reqObj != nil {
		b, err := json.Marshal(reqObj)
		if err != nil {
			return httpclient.ErrRequest.MsgErr("failed to encode request", err)
		}
		opts.Body = b
	}
	body, _, err := c.http.DoRequest(ctx, opts)
	if err != nil {
		return err
	}
	if rspObj == nil {
		return nil
	}
	if err := json.Unmarshal(body, rspObj); err != nil {
		return httpclient.ErrDecode.Err(err)
	}
	return nil
}

func itemPath(resourceType string, id int64) string {
	return httpclient.ItemPath(resourceType, strconv.FormatInt(id, 10))
}
