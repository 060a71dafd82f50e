package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-tania/forms"
	"go-tania/intro"
	"go-tania/models"
	"go-tania/utils"
)

// IntroController 处理新用户引导的三个步骤
type IntroController struct {
	Logger *zap.Logger
}

// NewIntroController 创建一个新的IntroController实例
func NewIntroController(logger *zap.Logger) *IntroController {
	return &IntroController{Logger: logger}
}

func introPage(step intro.Step, schemaName string, draft any, extra gin.H) gin.H {
	schema, _ := forms.Lookup(schemaName)
	page := gin.H{
		"step":  step,
		"steps": intro.Steps(),
		"form":  schema,
		"draft": draft,
	}
	for k, v := range extra {
		page[k] = v
	}
	return page
}

// FarmForm 引导第一步：农场
func (c *IntroController) FarmForm(ctx *gin.Context) {
	sess := currentSession(ctx)
	var (
		types     []models.FarmType
		countries []models.Country
	)
	g, gctx := errgroup.WithContext(ctx.Request.Context())
	g.Go(func() error {
		var err error
		types, err = sess.Store.Farm.FetchFarmTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = sess.Store.Location.FetchCountries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(ctx, c.Logger, err)
		return
	}

	utils.Success(ctx, introPage(intro.IntroFarmCreate, "farm", sess.Intro.Drafts().Farm, gin.H{
		"farm_types": types,
		"countries":  countries,
	}))
}

// CreateFarm 保存农场草稿并提交
func (c *IntroController) CreateFarm(ctx *gin.Context) {
	var req forms.FarmInput
	if !bind(ctx, &req) {
		return
	}
	sess := currentSession(ctx)
	sess.Intro.SetFarm(req.ToModel())
	farm, err := sess.Intro.CreateFarm(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	sess.SetLastStep(intro.IntroReservoirCreate)
	utils.Created(ctx, gin.H{"farm": farm, "next": intro.IntroReservoirCreate.Path()})
}

// ReservoirForm 引导第二步：水源
func (c *IntroController) ReservoirForm(ctx *gin.Context) {
	utils.Success(ctx, introPage(intro.IntroReservoirCreate, "reservoir", currentSession(ctx).Intro.Drafts().Reservoir, nil))
}

// CreateReservoir 保存水源草稿并提交
func (c *IntroController) CreateReservoir(ctx *gin.Context) {
	var req forms.ReservoirInput
	if !bind(ctx, &req) {
		return
	}
	sess := currentSession(ctx)
	sess.Intro.SetReservoir(req.ToModel())
	reservoir, err := sess.Intro.CreateReservoir(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	sess.SetLastStep(intro.IntroAreaCreate)
	utils.Created(ctx, gin.H{"reservoir": reservoir, "next": intro.IntroAreaCreate.Path()})
}

// AreaForm 引导第三步：区域
func (c *IntroController) AreaForm(ctx *gin.Context) {
	d := currentSession(ctx).Intro.Drafts()
	utils.Success(ctx, introPage(intro.IntroAreaCreate, "area", d.Area, gin.H{
		"reservoir": d.Reservoir,
	}))
}

// CreateArea 保存区域草稿和图片并提交，成功后引导结束
func (c *IntroController) CreateArea(ctx *gin.Context) {
	var req forms.AreaFields
	if !bind(ctx, &req) {
		return
	}
	name, data, ok, err := readPhoto(ctx, "photo")
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	var photo *intro.Photo
	if ok {
		photo = &intro.Photo{FileName: name, Data: data}
	}

	sess := currentSession(ctx)
	sess.Intro.SetArea(req.ToModel(), photo)
	area, err := sess.Intro.CreateArea(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	sess.SetLastStep("")
	c.Logger.Info("intro completed", zap.String("session_id", sess.ID), zap.String("username", sess.Username))
	utils.Created(ctx, gin.H{"area": area, "next": "/"})
}
