package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorParams            = 100001
	ErrorEmptyTask         = 100002
	ErrorEmptyAssessment   = 100003
	ErrorNoCredential      = 100004
	ErrorUpstream          = 100005
	ErrorInvalidResponse   = 100006
	ErrorNoSubtasks        = 100007
	ErrorRequestInFlight   = 100008
	ErrorModeInvalid       = 100009
	ErrorFocusTimerInvalid = 100010
)

var ErrorMessages = map[int]string{
	ErrorParams:            "invalid request parameters",
	ErrorEmptyTask:         "userTask is required",
	ErrorEmptyAssessment:   "assessment answers are required",
	ErrorNoCredential:      "AI service credential is not configured",
	ErrorUpstream:          "AI service request failed",
	ErrorInvalidResponse:   "Invalid response format",
	ErrorNoSubtasks:        "No subtasks were generated. Please try rephrasing your task.",
	ErrorRequestInFlight:   "a request is already in flight, please wait",
	ErrorModeInvalid:       "unknown ADHD type",
	ErrorFocusTimerInvalid: "timer minutes must be between 1 and 120",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}

// CodeOf 取出错误码，非 model.Error 时返回 0
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}
