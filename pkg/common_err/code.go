package common_err

const (
	SUCCESS         = 200
	FAILED          = 500
	VALIDATE_FAILED = 404
	UNAUTHORIZED    = 401
	FORBIDDEN       = 403
	BODY_NOT_MATCH  = 400
)

var MsgFlags = map[int]string{
	SUCCESS:         "operation succeeded",
	FAILED:          "operation failed",
	VALIDATE_FAILED: "parameter validation failed",
	UNAUTHORIZED:    "not logged in or token expired",
	FORBIDDEN:       "no permission for this resource",
	BODY_NOT_MATCH:  "request body does not match the expected shape",
}

// GetMsg get error information based on Code
func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}
	return MsgFlags[FAILED]
}
