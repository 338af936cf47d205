package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
	"go.uber.org/zap"
)

// Middleware recovers panics and translates the last error attached to the
// context once the chain returns. Mount it after gin.Recovery so unknown
// panics still reach gin's own handler.
func (t *Translator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if !t.respond(c, recoveredError(rec)) {
				panic(rec)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if !t.respond(c, err) {
			t.log.Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

func (t *Translator) respond(c *gin.Context, err error) bool {
	result, ok := t.Handle(err)
	if !ok {
		return false
	}
	c.AbortWithStatusJSON(t.statusFunc(result), result)
	return true
}

func recoveredError(rec any) error {
	switch v := rec.(type) {
	case error:
		if isNilDereference(v) {
			return &exception.NilPointerError{Cause: v}
		}
		return v
	default:
		return fmt.Errorf("%v", v)
	}
}
