package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-listing/internal/repository"
	"github.com/iliyamo/property-listing/internal/service"
)

// stubPropertyService records calls and returns canned results per method.
type stubPropertyService struct {
	createOut service.PropertyDTO
	createErr error
	imageErr  error
	priceErr  error
	updateErr error
	listOut   []service.PropertyDTO
	listErr   error

	createIn   *service.PropertyDTO
	imageID    uint64
	imageIn    *service.PropertyAddImageDTO
	priceID    uint64
	priceIn    float64
	updateID   uint64
	updateIn   *service.PropertyDTO
	listFilter service.PropertyFilterDTO
}

func (s *stubPropertyService) CreateProperty(_ context.Context, dto service.PropertyDTO) (service.PropertyDTO, error) {
	s.createIn = &dto
	return s.createOut, s.createErr
}

func (s *stubPropertyService) AddImageToProperty(_ context.Context, id uint64, dto service.PropertyAddImageDTO) error {
	s.imageID = id
	s.imageIn = &dto
	return s.imageErr
}

func (s *stubPropertyService) ChangePropertyPrice(_ context.Context, id uint64, newPrice float64) error {
	s.priceID = id
	s.priceIn = newPrice
	return s.priceErr
}

func (s *stubPropertyService) UpdateProperty(_ context.Context, id uint64, dto service.PropertyDTO) error {
	s.updateID = id
	s.updateIn = &dto
	return s.updateErr
}

func (s *stubPropertyService) GetPropertiesWithFilters(_ context.Context, f service.PropertyFilterDTO) ([]service.PropertyDTO, error) {
	s.listFilter = f
	return s.listOut, s.listErr
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validPropertyBody = `{"name":"Casa Sol","address":"Av 1","price":100000,"codeInternal":"C001","year":"2020","idOwner":1}`

func TestCreatePropertyReturnsPersistedProjection(t *testing.T) {
	id := uint64(7)
	stub := &stubPropertyService{createOut: service.PropertyDTO{
		IDProperty: &id, Name: "Casa Sol", Address: "Av 1",
		Price: 100000, CodeInternal: "C001", Year: "2020", IDOwner: 1,
	}}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/Property/CreateProperty", validPropertyBody)
	require.NoError(t, h.CreateProperty(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got service.PropertyDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.IDProperty)
	assert.Equal(t, uint64(7), *got.IDProperty)
	assert.Equal(t, "Casa Sol", got.Name)

	require.NotNil(t, stub.createIn)
	assert.Equal(t, uint64(1), stub.createIn.IDOwner)
}

func TestCreatePropertyValidationSkipsService(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/Property/CreateProperty",
		`{"name":"","address":"Av 1","price":1,"idOwner":1}`)
	require.NoError(t, h.CreateProperty(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	assert.Nil(t, stub.createIn)
}

func TestCreatePropertyNameConflict(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{createErr: repository.ErrPropertyNameExists})

	c, rec := newTestContext(http.MethodPost, "/api/Property/CreateProperty", validPropertyBody)
	require.NoError(t, h.CreateProperty(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestCreatePropertyOwnerNotFound(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{createErr: repository.ErrOwnerNotFound})

	c, rec := newTestContext(http.MethodPost, "/api/Property/CreateProperty", validPropertyBody)
	require.NoError(t, h.CreateProperty(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "owner not found")
}

func TestCreatePropertyUnexpectedError(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{createErr: assert.AnError})

	c, rec := newTestContext(http.MethodPost, "/api/Property/CreateProperty", validPropertyBody)
	require.NoError(t, h.CreateProperty(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAddImageToProperty(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/Property/7/AddImageToProperty",
		`{"file":"front.jpg","enabled":true}`)
	c.SetParamNames("idProperty")
	c.SetParamValues("7")
	require.NoError(t, h.AddImageToProperty(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint64(7), stub.imageID)
	require.NotNil(t, stub.imageIn)
	assert.Equal(t, "front.jpg", stub.imageIn.File)
	assert.True(t, stub.imageIn.Enabled)
}

func TestAddImageInvalidID(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/Property/abc/AddImageToProperty",
		`{"file":"front.jpg"}`)
	c.SetParamNames("idProperty")
	c.SetParamValues("abc")
	require.NoError(t, h.AddImageToProperty(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.imageIn)
}

func TestAddImagePropertyNotFound(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{imageErr: repository.ErrPropertyNotFound})

	c, rec := newTestContext(http.MethodPost, "/api/Property/42/AddImageToProperty",
		`{"file":"front.jpg","enabled":true}`)
	c.SetParamNames("idProperty")
	c.SetParamValues("42")
	require.NoError(t, h.AddImageToProperty(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "property not found")
}

func TestChangePriceAcceptsBareNumber(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/Property/7/ChangePrice", "125000.50")
	c.SetParamNames("idProperty")
	c.SetParamValues("7")
	require.NoError(t, h.ChangePrice(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint64(7), stub.priceID)
	assert.Equal(t, 125000.50, stub.priceIn)
}

func TestChangePriceRejectsNonNumber(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/Property/7/ChangePrice", `"expensive"`)
	c.SetParamNames("idProperty")
	c.SetParamValues("7")
	require.NoError(t, h.ChangePrice(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.priceID)
}

func TestChangePriceRejectsNegative(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/Property/7/ChangePrice", "-5")
	c.SetParamNames("idProperty")
	c.SetParamValues("7")
	require.NoError(t, h.ChangePrice(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price must not be negative")
	assert.Zero(t, stub.priceID)
}

func TestUpdateProperty(t *testing.T) {
	stub := &stubPropertyService{}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/Property/7/UpdateProperty", validPropertyBody)
	c.SetParamNames("idProperty")
	c.SetParamValues("7")
	require.NoError(t, h.UpdateProperty(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint64(7), stub.updateID)
	require.NotNil(t, stub.updateIn)
	assert.Equal(t, "Casa Sol", stub.updateIn.Name)
}

func TestUpdatePropertyNotFound(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{updateErr: repository.ErrPropertyNotFound})

	c, rec := newTestContext(http.MethodPut, "/api/Property/42/UpdateProperty", validPropertyBody)
	c.SetParamNames("idProperty")
	c.SetParamValues("42")
	require.NoError(t, h.UpdateProperty(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPropertiesPassesFilters(t *testing.T) {
	stub := &stubPropertyService{listOut: []service.PropertyDTO{}}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodGet,
		"/api/Property/GetProperties?name=Villa&address=Av&codeInternal=C0&year=2020", "")
	require.NoError(t, h.GetProperties(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.PropertyFilterDTO{
		Name: "Villa", Address: "Av", CodeInternal: "C0", Year: "2020",
	}, stub.listFilter)
	// An empty match set serializes as [], never null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetPropertiesReturnsItems(t *testing.T) {
	id := uint64(1)
	stub := &stubPropertyService{listOut: []service.PropertyDTO{
		{IDProperty: &id, Name: "Villa Norte", Address: "Av 1", Price: 100, IDOwner: 1},
	}}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/Property/GetProperties", "")
	require.NoError(t, h.GetProperties(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []service.PropertyDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Villa Norte", got[0].Name)
}
