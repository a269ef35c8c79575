package rest

import (
	"fmt"

	"github.com/oapi-codegen/runtime"

	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// pathWithID expands a single path parameter into format
func pathWithID(format, name string, value int64) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("invalid path parameter %s", name), err)
	}
	return fmt.Sprintf(format, param), nil
}
