package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/handler"
	"github.com/vihackerframework/vihacker-go/service"
)

type eventRequest struct {
	UUID       string         `json:"uuid" binding:"omitempty,uuid"`
	SourceID   string         `json:"source_id" binding:"required"`
	Name       string         `json:"name" binding:"required"`
	Properties map[string]any `json:"properties"`
}

type batchEventsRequest struct {
	Events []eventRequest `json:"events" binding:"required,min=1,max=500,dive"`
}

// @Summary store events, skipping uuids that already exist
// @Router /v1/events/batch [post]
func PostEventsBatch(c *gin.Context) {
	var req batchEventsRequest
	if err := handler.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	list := make([]model.EventModel, 0, len(req.Events))
	for _, e := range req.Events {
		props, err := service.EncodeProperties(e.Properties)
		if err != nil {
			_ = c.Error(err)
			return
		}
		list = append(list, model.EventModel{
			UUID:       e.UUID,
			SourceID:   e.SourceID,
			Name:       e.Name,
			Properties: props,
		})
	}

	n, err := service.MyService.Event().CreateEvents(c.Request.Context(), list)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(gin.H{"inserted": n, "skipped": int64(len(list)) - n}))
}

func GetEvents(c *gin.Context) {
	list, err := service.MyService.Event().GetEvents(c.Request.Context(), service.EventQuery{})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(list))
}

// @Summary filter events by source and name
// @Router /v1/events/search [get]
func GetEventsSearch(c *gin.Context) {
	var query service.EventQuery
	if err := handler.BindQuery(c, &query); err != nil {
		_ = c.Error(err)
		return
	}

	list, err := service.MyService.Event().GetEvents(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(list))
}

func GetEventByUUID(c *gin.Context) {
	id := c.Param("uuid")
	if err := handler.ValidateVar("GetEventByUUID", "uuid", id, "required,uuid"); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := service.MyService.Event().GetEventByUUID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(event))
}

// @Summary delete the local-storage events of one disk
// @Router /v1/events/serial/{serial} [delete]
func DeleteEventBySerial(c *gin.Context) {
	serial := c.Param("serial")
	if err := handler.ValidateVar("DeleteEventBySerial", "serial", serial, "required,max=64"); err != nil {
		_ = c.Error(err)
		return
	}

	n, err := service.MyService.Event().DeleteEventBySerial(c.Request.Context(), serial)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(gin.H{"deleted": n}))
}

func DeleteEvent(c *gin.Context) {
	id := c.Param("uuid")
	if err := handler.ValidateVar("DeleteEvent", "uuid", id, "required,uuid"); err != nil {
		_ = c.Error(err)
		return
	}

	if err := service.MyService.Event().DeleteEvent(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model.Ok(id))
}
