package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorHub/internal/model/dto"
	pkgerrors "VendorHub/pkg/errors"
)

type fakeOfferings struct {
	vendorID  string
	serviceID string
	created   dto.CreateServiceRequest
	updated   dto.UpdateServiceRequest
	deleted   bool
	err       error
}

func (f *fakeOfferings) List(ctx context.Context, vendorID string) ([]dto.ServiceResponse, error) {
	f.vendorID = vendorID
	if f.err != nil {
		return nil, f.err
	}
	return []dto.ServiceResponse{{ID: "1", Name: "Bridal Makeup", IsActive: true}, {ID: "2", Name: "HD Makeup"}}, nil
}

func (f *fakeOfferings) Get(ctx context.Context, vendorID, serviceID string) (*dto.ServiceResponse, error) {
	f.vendorID, f.serviceID = vendorID, serviceID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ServiceResponse{ID: serviceID, Name: "Bridal Makeup"}, nil
}

func (f *fakeOfferings) Create(ctx context.Context, vendorID string, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	f.vendorID = vendorID
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ServiceResponse{ID: "3", Name: req.Name, PricePaise: req.PricePaise}, nil
}

func (f *fakeOfferings) Update(ctx context.Context, vendorID, serviceID string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	f.vendorID, f.serviceID = vendorID, serviceID
	f.updated = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ServiceResponse{ID: serviceID, Name: "Bridal Makeup", PricePaise: *req.PricePaise}, nil
}

func (f *fakeOfferings) Delete(ctx context.Context, vendorID, serviceID string) error {
	f.vendorID, f.serviceID = vendorID, serviceID
	f.deleted = f.err == nil
	return f.err
}

func TestServicesRequireAccessToken(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/v1/services", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, pkgerrors.Unauthorized.Code, errorCode(t, body))

	status, _ = f.do(t, http.MethodDelete, "/v1/services/1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, f.offerings.deleted)
}

func TestListServices(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/v1/services", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "42", f.offerings.vendorID)

	var services []dto.ServiceResponse
	require.NoError(t, json.Unmarshal(body["data"], &services))
	require.Len(t, services, 2)
	assert.Equal(t, "HD Makeup", services[1].Name)
}

func TestCreateService(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPost, "/v1/services",
		dto.CreateServiceRequest{Name: "Party Makeup", PricePaise: 150000}, bearer(t, "42"))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Party Makeup", f.offerings.created.Name)
	assert.Contains(t, string(body["data"]), "Party Makeup")

	f.offerings.err = pkgerrors.ServiceAlreadyExists
	status, body = f.do(t, http.MethodPost, "/v1/services", dto.CreateServiceRequest{Name: "Party Makeup"}, bearer(t, "42"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, pkgerrors.ServiceAlreadyExists.Code, errorCode(t, body))

	f.offerings.err = pkgerrors.FieldErrors{"name": "Service name is required."}
	status, body = f.do(t, http.MethodPost, "/v1/services", dto.CreateServiceRequest{}, bearer(t, "42"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pkgerrors.ValidationFailed.Code, errorCode(t, body))
}

func TestGetService(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodGet, "/v1/services/7", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", f.offerings.serviceID)

	f.offerings.err = pkgerrors.ServiceNotFound
	status, body := f.do(t, http.MethodGet, "/v1/services/999", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, pkgerrors.ServiceNotFound.Code, errorCode(t, body))
}

func TestUpdateService(t *testing.T) {
	f := newFixture(t)
	price := int64(99000)

	status, body := f.do(t, http.MethodPatch, "/v1/services/7", dto.UpdateServiceRequest{PricePaise: &price}, bearer(t, "42"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", f.offerings.serviceID)
	assert.Nil(t, f.offerings.updated.Name)
	assert.Contains(t, string(body["data"]), "99000")
}

func TestDeleteService(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodDelete, "/v1/services/7", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusNoContent, status)
	assert.True(t, f.offerings.deleted)
	assert.Equal(t, "7", f.offerings.serviceID)

	f.offerings.err = pkgerrors.ServiceNotFound
	status, _ = f.do(t, http.MethodDelete, "/v1/services/7", nil, bearer(t, "42"))
	assert.Equal(t, http.StatusNotFound, status)
}
