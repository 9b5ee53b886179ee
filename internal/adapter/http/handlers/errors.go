package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"servisku/internal/domain/guard"
	"servisku/internal/usecase"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errForbidden      = pkg.NewDomainErrorSimple("FORBIDDEN", "You are not allowed to perform this action", http.StatusForbidden)
	errNotFound       = pkg.NewDomainErrorSimple("SERVICE_REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
)

var registerTagNames sync.Once

// bindJSON binds the body and reports validator failures under their json names.
func bindJSON(c *gin.Context, dst any) *pkg.AppError {
	registerTagNames.Do(useJSONFieldNames)
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]pkg.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, pkg.FieldError{Field: fe.Field(), Error: describeTag(fe)})
			}
			return pkg.NewValidationError(fields...)
		}
		return errInvalidRequest
	}
	return nil
}

func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// mapCommonError covers the failures every route shares. Specific handlers
// check their own sentinels first and fall back to this.
func mapCommonError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewValidationError(pkg.FieldError{Field: verr.Field, Error: verr.Message})
	case errors.Is(err, guard.ErrForbidden):
		return errForbidden
	case errors.Is(err, usecase.ErrServiceRequestNotFound):
		return errNotFound
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func abortWithError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
