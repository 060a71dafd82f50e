package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/forms"
	"go-tania/utils"
)

// FormController 表单定义和字段可见性
type FormController struct {
	Logger *zap.Logger
}

// NewFormController 创建一个新的FormController实例
func NewFormController(logger *zap.Logger) *FormController {
	return &FormController{Logger: logger}
}

// GetForms 全部表单名
func (c *FormController) GetForms(ctx *gin.Context) {
	utils.Success(ctx, forms.Names())
}

// GetForm 表单定义
func (c *FormController) GetForm(ctx *gin.Context) {
	schema, ok := forms.Lookup(ctx.Param("name"))
	if !ok {
		utils.NotFound(ctx, "form not found")
		return
	}
	utils.Success(ctx, schema)
}

// VisibleFields 根据当前填写的值计算可见字段
func (c *FormController) VisibleFields(ctx *gin.Context) {
	schema, ok := forms.Lookup(ctx.Param("name"))
	if !ok {
		utils.NotFound(ctx, "form not found")
		return
	}
	var values map[string]any
	if err := ctx.ShouldBindJSON(&values); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	fields, err := schema.Visible(values)
	if err != nil {
		c.Logger.Error("evaluate form rules", zap.String("form", schema.Name), zap.Error(err))
		utils.InternalServerError(ctx, "evaluate form rules")
		return
	}
	utils.Success(ctx, fields)
}
