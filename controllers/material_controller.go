package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/forms"
	"go-tania/models"
	"go-tania/utils"
)

// MaterialController 处理库存物料相关的请求
type MaterialController struct {
	Logger *zap.Logger
}

// NewMaterialController 创建一个新的MaterialController实例
func NewMaterialController(logger *zap.Logger) *MaterialController {
	return &MaterialController{Logger: logger}
}

// GetMaterials 分页获取物料
func (c *MaterialController) GetMaterials(ctx *gin.Context) {
	current := page(ctx)
	p, err := currentSession(ctx).Store.Inventory.FetchMaterials(ctx.Request.Context(), current)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	paginated(ctx, p.Items, p.TotalRows, current)
}

// GetAgrochemicals 按细分类型获取农药化肥
func (c *MaterialController) GetAgrochemicals(ctx *gin.Context) {
	items, err := currentSession(ctx).Store.Inventory.FetchAgrochemicalMaterials(ctx.Request.Context(), ctx.Query("type_detail"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if items == nil {
		items = []models.Material{}
	}
	utils.Success(ctx, items)
}

// SaveMaterial 创建或更新物料
func (c *MaterialController) SaveMaterial(ctx *gin.Context) {
	var req forms.MaterialInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	m, err := currentSession(ctx).Store.Inventory.SubmitMaterial(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if req.UID == "" {
		utils.Created(ctx, m)
		return
	}
	utils.Success(ctx, m)
}
