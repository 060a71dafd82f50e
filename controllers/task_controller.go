package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/api"
	"go-tania/forms"
	"go-tania/models"
	"go-tania/utils"
)

// TaskController 处理任务相关的请求
type TaskController struct {
	Logger *zap.Logger
}

// NewTaskController 创建一个新的TaskController实例
func NewTaskController(logger *zap.Logger) *TaskController {
	return &TaskController{Logger: logger}
}

// GetTasks 分页获取任务。
// 带 domain 和 asset_id 时按资产查询；带 category、priority、status 之一时按条件筛选
func (c *TaskController) GetTasks(ctx *gin.Context) {
	st := currentSession(ctx).Store
	current := page(ctx)
	rctx := ctx.Request.Context()

	var (
		p   api.Page[models.Task]
		err error
	)
	domain, assetID := ctx.Query("domain"), ctx.Query("asset_id")
	filter := api.TaskFilter{
		Category: ctx.Query("category"),
		Priority: ctx.Query("priority"),
		Status:   ctx.Query("status"),
	}
	switch {
	case domain != "" && assetID != "":
		p, err = st.Task.FetchTasksByAsset(rctx, current, domain, assetID)
	case filter != (api.TaskFilter{}):
		p, err = st.Task.FetchTasksByFilter(rctx, current, filter)
	default:
		p, err = st.Task.FetchTasks(rctx, current)
	}
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	paginated(ctx, p.Items, p.TotalRows, current)
}

// SaveTask 创建或更新任务
func (c *TaskController) SaveTask(ctx *gin.Context) {
	var req forms.TaskInput
	if !bind(ctx, &req) {
		return
	}
	req.UID = ctx.Param("id")
	t, err := currentSession(ctx).Store.Task.SubmitTask(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	if req.UID == "" {
		utils.Created(ctx, t)
		return
	}
	utils.Success(ctx, t)
}

// SetDue 标记任务到期
func (c *TaskController) SetDue(ctx *gin.Context) {
	t, err := currentSession(ctx).Store.Task.SetTaskDue(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, t)
}

// SetCompleted 标记任务完成
func (c *TaskController) SetCompleted(ctx *gin.Context) {
	t, err := currentSession(ctx).Store.Task.SetTaskCompleted(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, t)
}
