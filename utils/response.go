package utils

import "github.com/gin-gonic/gin"

// Response envelope: { status, message, success, data? }

var successMessages = map[int]string{
	200: "Fetched successfully",
	201: "Added successfully",
	202: "Updated successfully",
	204: "Deleted successfully",
}

var errorMessages = map[int]string{
	400: "Validation error",
	401: "Invalid Access Token",
	403: "Access denied",
	404: "Resource not found",
	500: "Something went wrong",
}

type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// NewEnvelope maps the status code to its default message; an explicit
// message overrides the default.
func NewEnvelope(status int, message string, data interface{}) Envelope {
	e := Envelope{Status: status, Message: message, Data: data}
	if _, ok := successMessages[status]; ok {
		e.Success = true
		if e.Message == "" {
			e.Message = successMessages[status]
		}
	} else if e.Message == "" {
		e.Message = errorMessages[status]
	}
	return e
}

func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewEnvelope(status, "", data))
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, NewEnvelope(status, message, nil))
}
