package handlers

import (
	"github.com/oleiade/reflections"

	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
	"github.com/soffa-projects/record-api/util/ids"
)

// CRUD registers the standard record operations on a resource group.
// Authentication is attached by the caller at group level; read and write
// operations carry their own required permissions.
func CRUD[Dto any, CreateDto any, UpdateDto any](g core.BaseRouter, view core.MiddlewareFunc, manage core.MiddlewareFunc) {
	g.GET("", func(ctx core.Ctx, input schema.PagingInput) schema.EntityList[Dto] {
		return GetEntityList[Dto](ctx, input)
	}, view)
	g.GET("/count", func(ctx core.Ctx) schema.CountResult {
		return CountEntities[Dto](ctx)
	}, view)
	g.GET("/:id", func(ctx core.Ctx, input schema.IdModel) Dto {
		return GetEntity[Dto](ctx, input)
	}, view)
	g.POST("", func(ctx core.Ctx, input CreateDto) Dto {
		var model Dto
		return CreateEntity(ctx, input, model)
	}, manage)
	g.DELETE("/:id", func(ctx core.Ctx, input schema.IdModel) schema.IdModel {
		return DeleteEntity[Dto](ctx, input)
	}, manage)
	g.PATCH("/:id", func(ctx core.Ctx, input UpdateDto) Dto {
		return UpdateEntity[Dto](ctx, input)
	}, manage)
}

func GetEntityList[T any](c core.Ctx, paging schema.PagingInput) schema.EntityList[T] {
	db := c.CurrentDB()
	var data []T
	page := 1
	limit := 1000
	if paging.Count > 0 {
		limit = paging.Count
	}
	if paging.Page > 1 {
		page = paging.Page
	}
	q := core.Query{
		Offset: int64((page - 1) * limit),
		Limit:  int64(limit),
	}
	h.RaiseAny(db.Find(&data, q))
	var model T
	total := h.F(db.Count(&model, core.Query{}))
	return schema.EntityList[T]{
		Data:  data,
		Page:  page,
		Total: int(total),
	}
}

func CountEntities[T any](c core.Ctx) schema.CountResult {
	db := c.CurrentDB()
	var model T
	return schema.CountResult{Count: h.F(db.Count(&model, core.Query{}))}
}

func GetEntity[T any](c core.Ctx, input schema.IdModel) T {
	db := c.CurrentDB()
	var entity T
	err := db.First(&entity, core.Query{
		W:    "id = ?",
		Args: []any{*input.Id},
	})
	h.RaiseIf(err == core.ErrRecordNotFound, errors.ResourceNotFound("record_not_found"))
	h.RaiseAny(err)
	return entity
}

func CreateEntity[T any](c core.Ctx, input any, entity T) T {
	db := c.CurrentDB()
	h.RaiseAny(h.CopyAllFields(&entity, input, true))
	prefix := h.F(reflections.GetFieldTag(entity, "Id", "prefix"))
	h.RaiseIf(h.IsStrEmpty(prefix), errors.Technical("entity_missing_id_prefix"))
	h.RaiseAny(reflections.SetField(&entity, "Id", ids.NewIdPtr(prefix)))
	h.RaiseAny(db.Create(&entity))
	return entity
}

func UpdateEntity[T any](c core.Ctx, input any) T {
	db := c.CurrentDB()
	id := h.UnwrapStr(h.F(reflections.GetField(input, "Id")).(*string))
	var entity T
	err := db.First(&entity, core.Query{
		W:    "id = ?",
		Args: []any{id},
	})
	h.RaiseIf(err == core.ErrRecordNotFound, errors.ResourceNotFound("record_not_found"))
	h.RaiseAny(err)
	h.RaiseAny(h.CopyAllFields(&entity, input, true))
	h.RaiseAny(db.Save(&entity))
	return entity
}

func DeleteEntity[T any](c core.Ctx, input schema.IdModel) schema.IdModel {
	db := c.CurrentDB()
	var entity T
	affected, err := db.Delete(entity, core.Query{
		W:    "id = ?",
		Args: []any{*input.Id},
	})
	h.RaiseAny(err)
	h.RaiseIf(affected == 0, errors.ResourceNotFound("record_not_found"))
	return input
}
