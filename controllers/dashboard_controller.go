package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-tania/api"
	"go-tania/models"
	"go-tania/session"
	"go-tania/utils"
)

// DashboardController 首页
type DashboardController struct {
	Logger *zap.Logger
}

// NewDashboardController 创建一个新的DashboardController实例
func NewDashboardController(logger *zap.Logger) *DashboardController {
	return &DashboardController{Logger: logger}
}

// Dashboard 首页数据
type Dashboard struct {
	Farm        models.Farm            `json:"farm"`
	Information models.CropInformation `json:"information"`
	Areas       []models.Area          `json:"areas"`
	Reservoirs  []models.Reservoir     `json:"reservoirs"`
	Tasks       []models.Task          `json:"tasks"`
	TaskTotal   int                    `json:"task_total"`
}

// Index 并发加载首页的各个部分
func (c *DashboardController) Index(ctx *gin.Context) {
	sess := currentSession(ctx)
	farmID, ok := currentFarmID(ctx, c.Logger)
	if !ok {
		return
	}
	d, err := loadDashboard(ctx.Request.Context(), sess, farmID)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, d)
}

func loadDashboard(ctx context.Context, sess *session.Session, farmID string) (Dashboard, error) {
	d := Dashboard{Farm: sess.Store.Farm.Current()}
	var tasks api.Page[models.Task]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Information, err = sess.Store.Farm.FetchCropInformation(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.Areas, err = sess.Store.Area.FetchAreas(gctx, farmID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Reservoirs, err = sess.Store.Reservoir.FetchReservoirs(gctx, farmID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = sess.Store.Task.FetchTasks(gctx, 1)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	d.Tasks = tasks.Items
	if d.Tasks == nil {
		d.Tasks = []models.Task{}
	}
	d.TaskTotal = tasks.TotalRows
	return d, nil
}
