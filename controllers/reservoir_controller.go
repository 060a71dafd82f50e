package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/forms"
	"go-tania/models"
	"go-tania/utils"
)

// ReservoirController 处理水源相关的请求
type ReservoirController struct {
	Logger *zap.Logger
}

// NewReservoirController 创建一个新的ReservoirController实例
func NewReservoirController(logger *zap.Logger) *ReservoirController {
	return &ReservoirController{Logger: logger}
}

// GetReservoirs 当前农场的水源
func (c *ReservoirController) GetReservoirs(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	reservoirs, err := currentSession(ctx).Store.Reservoir.FetchReservoirs(ctx.Request.Context(), farmID)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, reservoirs)
}

// GetReservoir 水源详情
func (c *ReservoirController) GetReservoir(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	r, err := currentSession(ctx).Store.Reservoir.FindReservoir(ctx.Request.Context(), farmID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, r)
}

// SaveReservoir 创建或更新水源
func (c *ReservoirController) SaveReservoir(ctx *gin.Context) {
	var req forms.ReservoirInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	r, err := currentSession(ctx).Store.Reservoir.SubmitReservoir(ctx.Request.Context(), farmID, req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if req.UID == "" {
		utils.Created(ctx, r)
		return
	}
	utils.Success(ctx, r)
}

// CreateNote 添加备注
func (c *ReservoirController) CreateNote(ctx *gin.Context) {
	var req forms.NoteInput
	if !bind(ctx, &req) {
		return
	}
	r, err := currentSession(ctx).Store.Reservoir.CreateNote(ctx.Request.Context(), models.Note{
		ObjUID:  ctx.Param("id"),
		Content: req.Content,
	})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Created(ctx, r)
}

// DeleteNote 删除备注
func (c *ReservoirController) DeleteNote(ctx *gin.Context) {
	r, err := currentSession(ctx).Store.Reservoir.DeleteNote(ctx.Request.Context(), models.Note{
		UID:    ctx.Param("note"),
		ObjUID: ctx.Param("id"),
	})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, r)
}
