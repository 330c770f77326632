package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Payload is a response body other than Response, such as a refused
// reservation, recorded so ErrorHandler can replay it.
type Payload struct {
	Status int
	Body   any
}

// AbortWithError keeps err on the gin context for request logging and writes
// the generic error shape.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, status, resp, resp)
}

// AbortWithBody is AbortWithError for handlers that answer with their own
// body shape.
func AbortWithBody(c *gin.Context, status int, err error, body any) {
	if err == nil {
		panic("AbortWithBody: err cannot be nil")
	}
	abort(c, err, status, Payload{Status: status, Body: body}, body)
}

func abort(c *gin.Context, err error, status int, meta, body any) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: meta,
	})
	c.AbortWithStatusJSON(status, body)
}
