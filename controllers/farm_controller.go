package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/forms"
	"go-tania/utils"
)

// FarmController 处理农场相关的请求
type FarmController struct {
	Logger *zap.Logger
}

// NewFarmController 创建一个新的FarmController实例
func NewFarmController(logger *zap.Logger) *FarmController {
	return &FarmController{Logger: logger}
}

// GetFarms 获取农场列表和当前农场
func (c *FarmController) GetFarms(ctx *gin.Context) {
	st := currentSession(ctx).Store
	farms, err := st.Farm.FetchFarms(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, gin.H{"farms": farms, "current": st.Farm.Current()})
}

// GetFarmTypes 农场类型
func (c *FarmController) GetFarmTypes(ctx *gin.Context) {
	types, err := currentSession(ctx).Store.Farm.FetchFarmTypes(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, types)
}

// GetInformation 当前农场的作物汇总
func (c *FarmController) GetInformation(ctx *gin.Context) {
	info, err := currentSession(ctx).Store.Farm.FetchCropInformation(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, info)
}

// GetInventories 可种植的物料
func (c *FarmController) GetInventories(ctx *gin.Context) {
	items, err := currentSession(ctx).Store.Farm.FetchFarmInventories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, items)
}

// CreateFarm 创建农场
func (c *FarmController) CreateFarm(ctx *gin.Context) {
	var req forms.FarmInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ""
	farm, err := currentSession(ctx).Store.Farm.SubmitFarm(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Created(ctx, farm)
}

// UpdateFarm 更新农场
func (c *FarmController) UpdateFarm(ctx *gin.Context) {
	var req forms.FarmInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	farm, err := currentSession(ctx).Store.Farm.SubmitFarm(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, farm)
}

// SelectFarm 切换当前农场
func (c *FarmController) SelectFarm(ctx *gin.Context) {
	farm, err := currentSession(ctx).Store.Farm.SetCurrentFarm(ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, farm)
}
