package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	uuid "github.com/satori/go.uuid"
	"github.com/tidwall/gjson"
	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
	"github.com/vihackerframework/vihacker-go/pkg/injector"
	"gorm.io/gorm"
)

// SourceLocalStorage marks events raised for attached disks. Only these carry
// a "serial" property.
const SourceLocalStorage = "local-storage"

const defaultLimit = 100

type EventQuery struct {
	SourceID string `form:"source_id"`
	Name     string `form:"name"`
	Limit    int    `form:"limit" binding:"omitempty,gt=0,lte=1000"`
}

type EventService interface {
	CreateEvents(ctx context.Context, list []model.EventModel) (int64, error)
	GetEvents(ctx context.Context, query EventQuery) ([]model.EventModel, error)
	GetEventByUUID(ctx context.Context, uuid string) (model.EventModel, error)
	DeleteEvent(ctx context.Context, uuid string) error
	DeleteEventBySerial(ctx context.Context, serial string) (int64, error)
}

type eventService struct {
	db     *gorm.DB
	mapper *injector.Mapper[model.EventModel]
}

// CreateEvents stores list in one insert-ignore batch. Events without a UUID
// get a fresh one; events whose UUID already exists are skipped and not
// counted.
func (e *eventService) CreateEvents(ctx context.Context, list []model.EventModel) (int64, error) {
	for i := range list {
		if list[i].UUID == "" {
			list[i].UUID = uuid.NewV4().String()
		}
	}
	n, err := e.mapper.InsertIgnoreBatch(ctx, list)
	if err != nil {
		return 0, exception.Wrap(err, "create events failed")
	}
	return n, nil
}

func (e *eventService) GetEvents(ctx context.Context, query EventQuery) (list []model.EventModel, err error) {
	tx := e.db.WithContext(ctx).Order("timestamp desc")
	if query.SourceID != "" {
		tx = tx.Where("source_id = ?", query.SourceID)
	}
	if query.Name != "" {
		tx = tx.Where("name = ?", query.Name)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if err = tx.Limit(limit).Find(&list).Error; err != nil {
		return nil, exception.Wrap(err, "query events failed")
	}
	return list, nil
}

func (e *eventService) GetEventByUUID(ctx context.Context, id string) (m model.EventModel, err error) {
	err = e.db.WithContext(ctx).Where("uuid = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, exception.WrapRuntime(err, fmt.Sprintf("event %s not found", id))
	}
	if err != nil {
		return m, exception.Wrap(err, "query event failed")
	}
	return m, nil
}

func (e *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := e.db.WithContext(ctx).Where("uuid = ?", id).Delete(&model.EventModel{}).Error; err != nil {
		return exception.Wrap(err, "delete event failed")
	}
	return nil
}

// DeleteEventBySerial removes the local-storage events whose "serial"
// property equals serial and returns how many were removed.
func (e *eventService) DeleteEventBySerial(ctx context.Context, serial string) (int64, error) {
	db := e.db.WithContext(ctx)

	var list []model.EventModel
	if err := db.Where("source_id = ?", SourceLocalStorage).Find(&list).Error; err != nil {
		return 0, exception.Wrap(err, "query events failed")
	}

	var uuids []string
	for _, v := range list {
		if !gjson.Valid(v.Properties) {
			continue
		}
		if gjson.Get(v.Properties, "serial").String() == serial {
			uuids = append(uuids, v.UUID)
		}
	}
	if len(uuids) == 0 {
		return 0, nil
	}

	result := db.Where("uuid IN ?", uuids).Delete(&model.EventModel{})
	if result.Error != nil {
		return 0, exception.Wrap(result.Error, "delete events failed")
	}
	return result.RowsAffected, nil
}

// EncodeProperties renders props as the JSON text stored in
// EventModel.Properties.
func EncodeProperties(props map[string]any) (string, error) {
	if len(props) == 0 {
		return "{}", nil
	}
	buf, err := sonic.Marshal(props)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func NewEventService(db *gorm.DB) EventService {
	return &eventService{db: db, mapper: injector.NewMapper[model.EventModel](db, nil)}
}
