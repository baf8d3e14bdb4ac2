package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// NotAuthenticated is the detail sent when a route needs a token.
const NotAuthenticated = "Not authenticated"

func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.Body())
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, apperrors.ValidationResponse{
		Detail: []apperrors.ValidationDetail{{
			Loc:  []interface{}{"body"},
			Msg:  "Invalid JSON body",
			Type: "value_error.jsondecode",
		}},
	})
}

// validationFailed renders validator errors as a 422 detail list, one entry
// per failing field.
func validationFailed(c echo.Context, err error) error {
	resp := apperrors.ValidationResponse{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			resp.Detail = append(resp.Detail, apperrors.ValidationDetail{
				Loc:  []interface{}{"body", fe.Field()},
				Msg:  fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()),
				Type: "value_error." + fe.Tag(),
			})
		}
	}
	if len(resp.Detail) == 0 {
		resp.Detail = []apperrors.ValidationDetail{{Msg: err.Error(), Type: "value_error"}}
	}
	return c.JSON(http.StatusUnprocessableEntity, resp)
}

// Unauthorized is the echo-jwt error handler.
func Unauthorized(c echo.Context, _ error) error {
	return c.JSON(http.StatusUnauthorized, apperrors.DetailResponse{Detail: NotAuthenticated})
}

func currentUser(c echo.Context) (model.ID, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return model.ID(claims.UserID), true
}
