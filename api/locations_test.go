package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLocationUseCase struct {
	mock.Mock
}

func (m *MockLocationUseCase) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationUseCase) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func TestLocationHandler_List_Success(t *testing.T) {
	mockService := &MockLocationUseCase{}
	handler := NewLocationHandler(mockService)

	c, recorder := testContext(http.MethodGet, "/locations/", "")

	mockService.On("List", mock.Anything).Return([]domain.Location{
		{ID: 10, Name: "Gudauri", CountryName: "Georgia"},
		{ID: 20, Name: "Kazbegi", CountryName: "Georgia"},
	}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp []domain.Location
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Gudauri", resp[0].Name)

	mockService.AssertExpectations(t)
}

func TestLocationHandler_List_ServiceError(t *testing.T) {
	mockService := &MockLocationUseCase{}
	handler := NewLocationHandler(mockService)

	c, recorder := testContext(http.MethodGet, "/locations/", "")

	mockService.On("List", mock.Anything).Return(nil, errors.New("database error")).Once()

	handler.list(c)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestLocationHandler_Get_Success(t *testing.T) {
	mockService := &MockLocationUseCase{}
	handler := NewLocationHandler(mockService)

	c, recorder := testContext(http.MethodGet, "/locations/10", "")
	c.Params = gin.Params{{Key: "id", Value: "10"}}

	mockService.On("GetByID", mock.Anything, int64(10)).Return(&domain.Location{
		ID:   10,
		Name: "Gudauri",
		FlightTypes: []domain.FlightType{
			{ID: 100, Name: "Tandem flight", PriceGEL: 300},
		},
	}, nil).Once()

	handler.get(c)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp domain.Location
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Gudauri", resp.Name)
	assert.Len(t, resp.FlightTypes, 1)
}

func TestLocationHandler_Get_InvalidID(t *testing.T) {
	mockService := &MockLocationUseCase{}
	handler := NewLocationHandler(mockService)

	c, recorder := testContext(http.MethodGet, "/locations/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	mockService.AssertNotCalled(t, "GetByID")
}

func TestLocationHandler_Get_NotFound(t *testing.T) {
	mockService := &MockLocationUseCase{}
	handler := NewLocationHandler(mockService)

	c, recorder := testContext(http.MethodGet, "/locations/99", "")
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, nil).Once()

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "location not found")
}
