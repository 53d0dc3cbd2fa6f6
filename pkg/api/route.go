package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/pkg/schema"
)

var logger = internal.Logger

// DefaultMaxBodySize limits size of posted log text.
const DefaultMaxBodySize = 32 * 1024 * 1024

type Arguments struct {
	Registry    *schema.Registry
	MaxBodySize int64
}

func (x Arguments) maxBodySize() int64 {
	if x.MaxBodySize > 0 {
		return x.MaxBodySize
	}
	return DefaultMaxBodySize
}

type apiResponse struct {
	Code    int
	Message interface{}
}

type handler func(args Arguments, c *gin.Context) (*apiResponse, Error)

func handleRequest(args Arguments, c *gin.Context, hdlr handler) {
	resp, err := hdlr(args, c)
	if err != nil {
		if err.Code() >= 500 {
			logger.WithError(err).Error("Request failed")
		} else {
			logger.WithField("message", err.Message()).Debug("Bad request")
		}
		c.JSON(err.Code(), gin.H{"message": err.Message()})
	} else {
		c.JSON(resp.Code, resp.Message)
	}
}

func SetupRoute(r *gin.RouterGroup, args Arguments) {
	r.POST("/decode", func(c *gin.Context) {
		handleRequest(args, c, decodeLog)
	})
	r.GET("/formats", func(c *gin.Context) {
		handleRequest(args, c, getFormats)
	})
}
