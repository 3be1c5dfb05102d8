// Package httputils provides HTTP utility functions.
package httputils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/response"
)

// WriteResponse writes the response to the client.
// It handles both success and error cases, ensuring consistent response format.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		var resp *response.Response
		if errno, ok := err.(*errors.Errno); ok {
			resp = response.Err(errno)
		} else {
			resp = response.Err(errors.ErrInternal.WithMessage(err.Error()))
		}
		c.JSON(resp.HTTPStatus(), resp)
		return
	}

	// data can be *response.Response (e.g. from response.Page) or raw data
	if resp, ok := data.(*response.Response); ok {
		c.JSON(resp.HTTPStatus(), resp)
		return
	}

	c.JSON(http.StatusOK, response.Success(data))
}

// WriteCreated writes a 201 response for successfully created resources.
// Errors are written the same way as WriteResponse.
func WriteCreated(c *gin.Context, err error, data interface{}) {
	if err != nil {
		WriteResponse(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, response.Success(data))
}
