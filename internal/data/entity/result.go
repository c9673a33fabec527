package entity

import "net/http"

// Result is the outcome of every domain operation. Its value is the HTTP
// status the route layer answers with.
type Result int

const (
	ResultSuccess             Result = http.StatusOK
	ResultFail                Result = http.StatusUnauthorized
	ResultForbidden           Result = http.StatusForbidden
	ResultNotFound            Result = http.StatusNotFound
	ResultTimeOut             Result = http.StatusRequestTimeout
	ResultConflict            Result = http.StatusConflict
	ResultEntityError         Result = http.StatusUnprocessableEntity
	ResultInternalServerError Result = http.StatusInternalServerError
)

// Results lists every member in code order.
var Results = []Result{
	ResultSuccess,
	ResultFail,
	ResultForbidden,
	ResultNotFound,
	ResultTimeOut,
	ResultConflict,
	ResultEntityError,
	ResultInternalServerError,
}

func (r Result) Code() int {
	return int(r)
}

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultFail:
		return "FAIL"
	case ResultForbidden:
		return "FORBIDDEN"
	case ResultNotFound:
		return "NOT_FOUND"
	case ResultTimeOut:
		return "TIME_OUT"
	case ResultConflict:
		return "CONFLICT"
	case ResultEntityError:
		return "ENTITY_ERROR"
	case ResultInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "UNKNOWN"
	}
}

func (r Result) OK() bool {
	return r == ResultSuccess
}
