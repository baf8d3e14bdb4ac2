package errors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Client-side operation failures. Each one is the generic message surfaced
// when the storefront API answers with an unexpected status.
var (
	ErrCartFetch          = errors.New("failed to fetch user cart")
	ErrCartCreate         = errors.New("failed to create user cart")
	ErrCartItemsFetch     = errors.New("failed to fetch cart items")
	ErrCartItemAdd        = errors.New("failed to add product to cart")
	ErrCartItemUpdate     = errors.New("failed to update cart item")
	ErrCartItemRemove     = errors.New("failed to remove cart item")
	ErrCategoriesFetch    = errors.New("failed to fetch categories")
	ErrAllCategoriesFetch = errors.New("failed to fetch all categories")
	ErrAdminCategories    = errors.New("failed to fetch admin categories")
	ErrProductsFetch      = errors.New("failed to fetch products")
	ErrProductFetch       = errors.New("failed to fetch product")
	ErrCategoryProducts   = errors.New("failed to fetch category products")
	ErrAdminProducts      = errors.New("failed to fetch admin products")

	// ErrValidation is returned for 422 responses without a usable detail message.
	ErrValidation = errors.New("validation error")
)

// Server-side failures raised by the mock storefront API.
var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrCartNotFound is returned when the user has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrProductNotFound is returned when a product id is unknown.
	ErrProductNotFound = errors.New("product not found")
	// ErrItemNotFound is returned when a cart has no line for the product.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidQuantity is returned when a quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// APIError is a non-success answer from the storefront API. Error returns
// Message verbatim so callers can show it directly.
type APIError struct {
	Op         error
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the operation sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	return e.Op
}

// NewAPIError creates an APIError carrying the generic message of op.
func NewAPIError(op error, statusCode int) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: statusCode,
		Message:    op.Error(),
	}
}

// ValidationDetail is one entry of a 422 payload.
type ValidationDetail struct {
	Loc  []interface{} `json:"loc,omitempty"`
	Msg  string        `json:"msg"`
	Type string        `json:"type,omitempty"`
}

// ValidationResponse is the body the storefront API sends with 422.
type ValidationResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

// DetailResponse is the body the storefront API sends for other errors.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// FromValidationResponse reads a 422 body and returns an APIError whose message
// is the first detail message, or the generic validation message if there is none.
func FromValidationResponse(resp *http.Response) *APIError {
	apiErr := NewAPIError(ErrValidation, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var payload ValidationResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if len(payload.Detail) > 0 && payload.Detail[0].Msg != "" {
		apiErr.Message = payload.Detail[0].Msg
	}
	return apiErr
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Body renders the error the way the storefront API does. Validation
// failures use the list form, everything else a plain detail string.
func (e *HTTPError) Body() interface{} {
	if e.StatusCode == http.StatusUnprocessableEntity {
		return ValidationResponse{Detail: []ValidationDetail{{Msg: e.Message, Type: "value_error"}}}
	}
	return DetailResponse{Detail: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrCartNotFound), errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
