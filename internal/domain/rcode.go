package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ResponseCode is the API-level status carried in rCode.
type ResponseCode int

const (
	CodeSuccess            ResponseCode = 100
	CodeInvalidKey         ResponseCode = 101
	CodeInvalidState       ResponseCode = 102
	CodeInvalidCity        ResponseCode = 103
	CodeInvalidPostalCode  ResponseCode = 104
	CodeInvalidQueryFormat ResponseCode = 105
)

var responseCodeText = map[ResponseCode]string{
	CodeSuccess:            "Successful API request",
	CodeInvalidKey:         "Invalid API key",
	CodeInvalidState:       "Invalid state",
	CodeInvalidCity:        "Invalid city",
	CodeInvalidPostalCode:  "Invalid postal code",
	CodeInvalidQueryFormat: "Invalid query format",
}

// ParseResponseCode reads rCode whether the API sent it as a number or a string.
func ParseResponseCode(v Value) (ResponseCode, bool) {
	if f, ok := v.Float64(); ok {
		return ResponseCode(int(f)), true
	}
	if s, ok := v.Text(); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return ResponseCode(n), true
	}
	return 0, false
}

// OK reports whether the code signals a successful request.
func (c ResponseCode) OK() bool { return c == CodeSuccess }

// Description returns the documented meaning of the code.
func (c ResponseCode) Description() string {
	if s, ok := responseCodeText[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown response code %d", int(c))
}
