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

// CropController 处理作物批次相关的请求
type CropController struct {
	Logger *zap.Logger
}

// NewCropController 创建一个新的CropController实例
func NewCropController(logger *zap.Logger) *CropController {
	return &CropController{Logger: logger}
}

// GetCrops 分页获取当前农场的批次，status 可选
func (c *CropController) GetCrops(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	current := page(ctx)
	p, err := currentSession(ctx).Store.Crop.FetchCrops(ctx.Request.Context(), farmID, current, ctx.Query("status"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	paginated(ctx, p.Items, p.TotalRows, current)
}

// GetArchivedCrops 分页获取已归档批次
func (c *CropController) GetArchivedCrops(ctx *gin.Context) {
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	current := page(ctx)
	p, err := currentSession(ctx).Store.Crop.FetchArchivedCrops(ctx.Request.Context(), farmID, current)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	paginated(ctx, p.Items, p.TotalRows, current)
}

// GetCrop 批次详情
func (c *CropController) GetCrop(ctx *gin.Context) {
	crop, err := currentSession(ctx).Store.Crop.FindCrop(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, crop)
}

// SaveCrop 创建或更新批次
func (c *CropController) SaveCrop(ctx *gin.Context) {
	var req forms.CropInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	crop, err := currentSession(ctx).Store.Crop.SubmitCrop(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if req.UID == "" {
		utils.Created(ctx, crop)
		return
	}
	utils.Success(ctx, crop)
}

// MoveCrop 移栽
func (c *CropController) MoveCrop(ctx *gin.Context) {
	var req forms.MoveInput
	if !bind(ctx, &req) {
		return
	}
	c.respondCrop(ctx)(currentSession(ctx).Store.Crop.MoveCrop(ctx.Request.Context(), ctx.Param("id"), req.ToModel()))
}

// HarvestCrop 收获
func (c *CropController) HarvestCrop(ctx *gin.Context) {
	var req forms.HarvestInput
	if !bind(ctx, &req) {
		return
	}
	c.respondCrop(ctx)(currentSession(ctx).Store.Crop.HarvestCrop(ctx.Request.Context(), ctx.Param("id"), req.ToModel()))
}

// DumpCrop 丢弃
func (c *CropController) DumpCrop(ctx *gin.Context) {
	var req forms.DumpInput
	if !bind(ctx, &req) {
		return
	}
	c.respondCrop(ctx)(currentSession(ctx).Store.Crop.DumpCrop(ctx.Request.Context(), ctx.Param("id"), req.ToModel()))
}

// WaterCrop 浇水
func (c *CropController) WaterCrop(ctx *gin.Context) {
	var req forms.WaterInput
	if !bind(ctx, &req) {
		return
	}
	c.respondCrop(ctx)(currentSession(ctx).Store.Crop.WaterCrop(ctx.Request.Context(), ctx.Param("id"), req.ToModel()))
}

func (c *CropController) respondCrop(ctx *gin.Context) func(models.Crop, error) {
	return func(crop models.Crop, err error) {
		if err != nil {
			respondError(ctx, c.Logger, err)
			return
		}
		utils.Success(ctx, crop)
	}
}

// UploadPhoto 上传批次图片
func (c *CropController) UploadPhoto(ctx *gin.Context) {
	name, data, ok, err := readPhoto(ctx, "photo")
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if !ok {
		utils.ValidationFailed(ctx, map[string]string{"photo": "The photo field is required."})
		return
	}
	err = currentSession(ctx).Store.Crop.PhotoCrop(ctx.Request.Context(), ctx.Param("id"), ctx.PostForm("description"),
		api.Photo{FileName: name, Content: bytes.NewReader(data)})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.NoContent(ctx)
}

// CreateNote 添加备注
func (c *CropController) CreateNote(ctx *gin.Context) {
	var req forms.NoteInput
	if !bind(ctx, &req) {
		return
	}
	crop, err := currentSession(ctx).Store.Crop.CreateNote(ctx.Request.Context(), models.Note{
		ObjUID:  ctx.Param("id"),
		Content: req.Content,
	})
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Created(ctx, crop)
}

// DeleteNote 删除备注
func (c *CropController) DeleteNote(ctx *gin.Context) {
	c.respondCrop(ctx)(currentSession(ctx).Store.Crop.DeleteNote(ctx.Request.Context(), models.Note{
		UID:    ctx.Param("note"),
		ObjUID: ctx.Param("id"),
	}))
}

// GetActivities 批次的操作记录
func (c *CropController) GetActivities(ctx *gin.Context) {
	activities, err := currentSession(ctx).Store.Crop.FetchActivities(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if activities == nil {
		activities = []models.CropActivity{}
	}
	utils.Success(ctx, activities)
}
