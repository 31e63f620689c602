package cloud

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IsAPIError reports whether err carries an error returned by the EC2
// service itself, such as UnauthorizedOperation or IncorrectInstanceState.
// Transport, credential and waiter failures are not API errors.
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// AsAPIError returns the service error carried by err, if any.
func AsAPIError(err error) (smithy.APIError, bool) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// APIErrorCode returns the service error code, or "" if err is not an API
// error.
func APIErrorCode(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.ErrorCode()
	}
	return ""
}
