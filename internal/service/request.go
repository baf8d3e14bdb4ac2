package service

import (
	"context"
	"net/http"

	apperrors "storefront/internal/errors"
	"storefront/internal/gateway"
)

const mediaJSON = "application/json"

// fetchJSON performs a read and decodes a 200 body into out. Any other
// status becomes an APIError carrying op's generic message. Transport
// errors are returned as-is.
func fetchJSON(ctx context.Context, gw gateway.Doer, path string, req gateway.Request, op error, out interface{}) error {
	resp, err := gw.Do(ctx, path, req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		gateway.Discard(resp)
		return apperrors.NewAPIError(op, resp.StatusCode)
	}
	return gateway.DecodeJSON(resp, out)
}

// mutation describes a write whose success is a bodyless 204.
type mutation struct {
	method string
	path   string
	header http.Header
	body   interface{}
	op     error
	// validation enables extracting detail[0].msg from 422 responses.
	validation bool
}

func sendMutation(ctx context.Context, gw gateway.Doer, m mutation) (bool, error) {
	body, err := gateway.JSONBody(m.body)
	if err != nil {
		return false, err
	}
	resp, err := gw.Do(ctx, m.path, gateway.Request{
		Method: m.method,
		Header: m.header,
		Body:   body,
	})
	if err != nil {
		return false, err
	}
	defer gateway.Discard(resp)

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return true, nil
	case resp.StatusCode == http.StatusUnprocessableEntity && m.validation:
		return false, apperrors.FromValidationResponse(resp)
	default:
		return false, apperrors.NewAPIError(m.op, resp.StatusCode)
	}
}

func jsonHeaders(accept string) http.Header {
	return http.Header{
		"Content-Type": []string{mediaJSON},
		"Accept":       []string{accept},
	}
}
