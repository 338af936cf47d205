package route

import (
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/vihackerframework/vihacker-go/pkg/config"
	"github.com/vihackerframework/vihacker-go/pkg/doc"
	"github.com/vihackerframework/vihacker-go/pkg/handler"
	"github.com/vihackerframework/vihacker-go/pkg/utils/jwt"
	"github.com/vihackerframework/vihacker-go/pkg/utils/logger"
	v1 "github.com/vihackerframework/vihacker-go/route/v1"
)

func InitRouter() (*gin.Engine, error) {
	// check if environment variable is set
	if ginMode, success := os.LookupEnv("GIN_MODE"); success {
		gin.SetMode(ginMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(RequestID())
	r.Use(handler.NewTranslator(handler.WithLogger(logger.L())).Middleware())
	r.Use(RateLimit(config.AppInfo.RateLimit))

	r.POST("/v1/users/token", v1.PostUserToken)

	v1Group := r.Group("/v1")
	v1Group.Use(jwt.JWT())
	{
		v1EventsGroup := v1Group.Group("/events")
		{
			v1EventsGroup.POST("/batch", v1.PostEventsBatch)
			v1EventsGroup.GET("", v1.GetEvents)
			v1EventsGroup.GET("/search", v1.GetEventsSearch)
			v1EventsGroup.GET("/:uuid", v1.GetEventByUUID)
			v1EventsGroup.DELETE("/serial/:serial", v1.DeleteEventBySerial)
		}

		v1AdminGroup := v1Group.Group("/admin")
		v1AdminGroup.Use(jwt.RequireRole(v1.RoleAdmin))
		{
			v1AdminGroup.DELETE("/events/:uuid", v1.DeleteEvent)
		}
	}

	if err := doc.Register(r, *config.DocInfo); err != nil {
		return nil, err
	}
	return r, nil
}
