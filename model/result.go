package model

import "github.com/vihackerframework/vihacker-go/pkg/common_err"

// Result is the envelope every JSON response is wrapped in. Success and
// failure are told apart by Code, not by the HTTP status.
type Result struct {
	Code    int         `json:"code" example:"200"`
	Message string      `json:"message" example:"operation succeeded"`
	Data    interface{} `json:"data,omitempty"`
}

func Ok(data interface{}) Result {
	return Result{Code: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: data}
}

// Failed returns a FAILED result carrying message. An empty message falls back
// to the fixed FAILED text.
func Failed(message string) Result {
	if len(message) == 0 {
		message = common_err.GetMsg(common_err.FAILED)
	}
	return Result{Code: common_err.FAILED, Message: message}
}

// FailedWith returns a result for code with its fixed message.
func FailedWith(code int) Result {
	return Result{Code: code, Message: common_err.GetMsg(code)}
}

func (r Result) IsSuccess() bool {
	return r.Code == common_err.SUCCESS
}
