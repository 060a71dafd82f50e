package controllers

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/api"
	"go-tania/forms"
	"go-tania/models"
	"go-tania/utils"
)

// AreaController 处理区域相关的请求
type AreaController struct {
	Logger *zap.Logger
}

// NewAreaController 创建一个新的AreaController实例
func NewAreaController(logger *zap.Logger) *AreaController {
	return &AreaController{Logger: logger}
}

// GetAreas 当前农场的区域
func (c *AreaController) GetAreas(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	areas, err := currentSession(ctx).Store.Area.FetchAreas(ctx.Request.Context(), farmID)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, areas)
}

// GetArea 区域详情
func (c *AreaController) GetArea(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	ar, err := currentSession(ctx).Store.Area.FindArea(ctx.Request.Context(), farmID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, ar)
}

// GetAreaCrops 区域内的作物批次
func (c *AreaController) GetAreaCrops(ctx *gin.Context) {
	crops, err := currentSession(ctx).API.FetchAreaCrops(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if crops == nil {
		crops = []models.Crop{}
	}
	utils.Success(ctx, crops)
}

// SaveArea 创建或更新区域，图片可选
func (c *AreaController) SaveArea(ctx *gin.Context) {
	var req forms.AreaInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	name, data, hasPhoto, err := readPhoto(ctx, "photo")
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	var photo *api.Photo
	if hasPhoto {
		photo = &api.Photo{FileName: name, Content: bytes.NewReader(data)}
	}

	ar, err := currentSession(ctx).Store.Area.SubmitArea(ctx.Request.Context(), farmID, req.ToModel(), photo)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if req.UID == "" {
		utils.Created(ctx, ar)
		return
	}
	utils.Success(ctx, ar)
}

// CreateNote 添加备注
func (c *AreaController) CreateNote(ctx *gin.Context) {
	var req forms.NoteInput
	if !bind(ctx, &req) {
		return
	}
	ar, err := currentSession(ctx).Store.Area.CreateNote(ctx.Request.Context(), models.Note{
		ObjUID:  ctx.Param("id"),
		Content: req.Content,
	})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Created(ctx, ar)
}

// DeleteNote 删除备注
func (c *AreaController) DeleteNote(ctx *gin.Context) {
	ar, err := currentSession(ctx).Store.Area.DeleteNote(ctx.Request.Context(), models.Note{
		UID:    ctx.Param("note"),
		ObjUID: ctx.Param("id"),
	})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, ar)
}
