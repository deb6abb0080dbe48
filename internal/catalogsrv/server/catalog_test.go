package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

func TestRootAndVersion(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	checkHeader(t, rr.Header())
	compareJson(t, api.MessageRsp{Message: "GPU Database API"}, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/version", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, &api.GetVersionRsp{ServerVersion: serverVersion, ApiVersion: api.ApiVersion_1_0}, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/memory-types/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, types.MemoryTypes(), rr.Body.String())
}

func TestManufacturers(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/manufacturers/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/manufacturers/", `{"name":"NVIDIA"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "/manufacturers/1", rr.Header().Get("Location"))
	compareJson(t, api.Manufacturer{ID: 1, Name: "NVIDIA"}, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/manufacturers/", `{"name":"NVIDIA"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, s, http.MethodPost, "/manufacturers/", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodGet, "/manufacturers/", nil)
	compareJson(t, []api.Manufacturer{{ID: 1, Name: "NVIDIA"}}, rr.Body.String())
}

// seedGPU creates a manufacturer and one gpu with a specification and a
// price, returning the gpu id.
func seedGPU(t *testing.T, s *CatalogServer) int64 {
	t.Helper()
	rr := do(t, s, http.MethodPost, "/manufacturers/", `{"name":"NVIDIA"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/gpus/", api.DeviceRequest{Name: "GeForce RTX 4070", ManufacturerID: 1, ReleaseYear: 2023})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := gjson.Get(rr.Body.String(), "id").Int()

	rr = do(t, s, http.MethodPost, "/specifications/", api.SpecificationRequest{
		GPUID: id, MemorySize: 12, MemoryType: types.MemoryTypeGDDR6X, BusWidth: 192,
		BaseClock: 1920, MaxResolution: "7680x4320", PSUPowerRequirement: 650,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/prices/", `{"gpu_id":1,"price":599.99,"date":"2024-03-09"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return id
}

func TestGPUCrud(t *testing.T) {
	s := newTestServer(t)
	id := seedGPU(t, s)
	assert.Equal(t, int64(1), id)

	rr := do(t, s, http.MethodGet, "/gpus/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	checkHeader(t, rr.Header())
	body := rr.Body.String()
	assert.Equal(t, "GeForce RTX 4070", gjson.Get(body, "name").String())
	assert.Equal(t, "NVIDIA", gjson.Get(body, "manufacturer.name").String())
	assert.Equal(t, "GDDR6X", gjson.Get(body, "specifications.0.memory_type").String())
	assert.Equal(t, 599.99, gjson.Get(body, "prices.0.price").Float())
	assert.Equal(t, "2024-03-09", gjson.Get(body, "prices.0.date").String())

	rr = do(t, s, http.MethodPut, "/gpus/1", api.DeviceRequest{Name: "GeForce RTX 4070 Super", ManufacturerID: 1, ReleaseYear: 2024})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, int64(2024), gjson.Get(rr.Body.String(), "release_year").Int())

	rr = do(t, s, http.MethodPut, "/specifications/1", `{"gpu_id":1,"memory_size":16,"memory_type":"GDDR6X"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = do(t, s, http.MethodPut, "/prices/1", `{"gpu_id":1,"price":549,"date":"2024-04-01"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/gpus/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := rr.Body.String()
	assert.Equal(t, int64(1), gjson.Get(list, "#").Int())
	assert.Equal(t, int64(16), gjson.Get(list, "0.specifications.0.memory_size").Int())
	// a full replace clears fields left out of the body
	assert.Equal(t, int64(0), gjson.Get(list, "0.specifications.0.bus_width").Int())
	assert.Equal(t, 549.0, gjson.Get(list, "0.prices.0.price").Float())

	rr = do(t, s, http.MethodDelete, "/gpus/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, api.MessageRsp{Message: "GPU deleted successfully"}, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/gpus/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "GPU not found", gjson.Get(rr.Body.String(), "error").String())

	// specifications and prices went with the gpu
	rr = do(t, s, http.MethodPut, "/specifications/1", `{"gpu_id":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRejectedRequests(t *testing.T) {
	s := newTestServer(t)
	seedGPU(t, s)

	validGPU := `{"name":"Radeon RX 7800 XT","manufacturer_id":1,"release_year":2023}`
	mutate := func(path string, value any) string {
		out, err := sjson.Set(validGPU, path, value)
		require.NoError(t, err)
		return out
	}
	validSpec := `{"gpu_id":1,"memory_size":16,"memory_type":"GDDR6"}`
	badMemoryType, err := sjson.Set(validSpec, "memory_type", "DDR9")
	require.NoError(t, err)
	orphanSpec, err := sjson.Set(validSpec, "gpu_id", 99)
	require.NoError(t, err)
	noName, err := sjson.Delete(validGPU, "name")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"missing name", http.MethodPost, "/gpus/", noName, http.StatusBadRequest},
		{"zero manufacturer", http.MethodPost, "/gpus/", mutate("manufacturer_id", 0), http.StatusBadRequest},
		{"unknown manufacturer", http.MethodPost, "/gpus/", mutate("manufacturer_id", 7), http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/gpus/", mutate("release_year", "soon"), http.StatusBadRequest},
		{"malformed", http.MethodPost, "/gpus/", `{"name":`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/gpus/", nil, http.StatusBadRequest},
		{"unknown gpu", http.MethodPut, "/gpus/99", validGPU, http.StatusNotFound},
		{"bad id", http.MethodGet, "/gpus/abc", nil, http.StatusBadRequest},
		{"negative id", http.MethodDelete, "/gpus/-1", nil, http.StatusBadRequest},
		{"delete unknown", http.MethodDelete, "/gpus/99", nil, http.StatusNotFound},
		{"bad memory type", http.MethodPost, "/specifications/", badMemoryType, http.StatusBadRequest},
		{"orphan specification", http.MethodPost, "/specifications/", orphanSpec, http.StatusBadRequest},
		{"unknown specification", http.MethodPut, "/specifications/99", validSpec, http.StatusNotFound},
		{"orphan price", http.MethodPost, "/prices/", `{"gpu_id":99,"price":1}`, http.StatusBadRequest},
		{"negative price", http.MethodPost, "/prices/", `{"gpu_id":1,"price":-1}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/prices/", `{"gpu_id":1,"price":1,"date":"09/03/2024"}`, http.StatusBadRequest},
		{"unknown price", http.MethodPut, "/prices/99", `{"gpu_id":1,"price":1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, int64(0), gjson.Get(rr.Body.String(), "result").Int())
			assert.NotEmpty(t, gjson.Get(rr.Body.String(), "error").String())
		})
	}

	// nothing above changed the catalog
	rr := do(t, s, http.MethodGet, "/gpus/", nil)
	assert.Equal(t, int64(1), gjson.Get(rr.Body.String(), "#").Int())
	assert.Equal(t, int64(1), gjson.Get(rr.Body.String(), "0.specifications.#").Int())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, "/gpus/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := executeTestRequest(t, s, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
