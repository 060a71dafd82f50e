package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/controllers"
	"go-tania/forms"
	"go-tania/intro"
	"go-tania/middleware"
	"go-tania/session"
)

// Options 路由依赖
type Options struct {
	Sessions *session.Manager
	Cookie   controllers.CookieOptions
	Logger   *zap.Logger
}

// SetupRouter 配置所有路由
func SetupRouter(opts Options) (*gin.Engine, error) {
	if err := forms.RegisterValidators(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))

	// 创建控制器实例
	authController := controllers.NewAuthController(opts.Sessions, opts.Cookie, logger)
	introController := controllers.NewIntroController(logger)
	dashboardController := controllers.NewDashboardController(logger)
	farmController := controllers.NewFarmController(logger)
	reservoirController := controllers.NewReservoirController(logger)
	areaController := controllers.NewAreaController(logger)
	cropController := controllers.NewCropController(logger)
	materialController := controllers.NewMaterialController(logger)
	taskController := controllers.NewTaskController(logger)
	locationController := controllers.NewLocationController(logger)
	formController := controllers.NewFormController(logger)

	// 公共路由
	public := r.Group("/")
	{
		public.GET("/healthz", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
		public.GET("/auth/login", authController.LoginForm)
		public.POST("/auth/login", authController.Login)
	}

	// 需要登录的路由
	protected := r.Group("/")
	protected.Use(middleware.Auth(opts.Sessions, opts.Cookie.Name))
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/me", authController.Me)
		protected.GET("/account/password", authController.PasswordForm)
		protected.POST("/account/password", authController.ChangePassword)

		protected.GET("/forms", formController.GetForms)
		protected.GET("/forms/:name", formController.GetForm)
		protected.POST("/forms/:name/visible", formController.VisibleFields)

		protected.GET("/locations/countries", locationController.GetCountries)
		protected.GET("/locations/countries/:id/cities", locationController.GetCities)
	}

	// 新用户引导
	introGroup := protected.Group("/")
	{
		introGroup.GET(intro.IntroFarmCreate.Path(), middleware.IntroGuard(intro.IntroFarmCreate), introController.FarmForm)
		introGroup.POST(intro.IntroFarmCreate.Path(), middleware.IntroGuard(intro.IntroFarmCreate), introController.CreateFarm)
		introGroup.GET(intro.IntroReservoirCreate.Path(), middleware.IntroGuard(intro.IntroReservoirCreate), introController.ReservoirForm)
		introGroup.POST(intro.IntroReservoirCreate.Path(), middleware.IntroGuard(intro.IntroReservoirCreate), introController.CreateReservoir)
		introGroup.GET(intro.IntroAreaCreate.Path(), middleware.IntroGuard(intro.IntroAreaCreate), introController.AreaForm)
		introGroup.POST(intro.IntroAreaCreate.Path(), middleware.IntroGuard(intro.IntroAreaCreate), introController.CreateArea)
	}

	// 完成引导后才能访问
	app := protected.Group("/")
	app.Use(middleware.IntroRequired())
	{
		app.GET("/", dashboardController.Index)

		// 农场
		app.GET("/farms", farmController.GetFarms)
		app.POST("/farms", farmController.CreateFarm)
		app.GET("/farms/types", farmController.GetFarmTypes)
		app.GET("/farms/information", farmController.GetInformation)
		app.GET("/farms/inventories", farmController.GetInventories)
		app.PUT("/farms/:id", farmController.UpdateFarm)
		app.PUT("/farms/:id/current", farmController.SelectFarm)

		// 水源
		app.GET("/reservoirs", reservoirController.GetReservoirs)
		app.POST("/reservoirs", reservoirController.SaveReservoir)
		app.GET("/reservoirs/:id", reservoirController.GetReservoir)
		app.PUT("/reservoirs/:id", reservoirController.SaveReservoir)
		app.POST("/reservoirs/:id/notes", reservoirController.CreateNote)
		app.DELETE("/reservoirs/:id/notes/:note", reservoirController.DeleteNote)

		// 区域
		app.GET("/areas", areaController.GetAreas)
		app.POST("/areas", areaController.SaveArea)
		app.GET("/areas/:id", areaController.GetArea)
		app.PUT("/areas/:id", areaController.SaveArea)
		app.GET("/areas/:id/crops", areaController.GetAreaCrops)
		app.POST("/areas/:id/notes", areaController.CreateNote)
		app.DELETE("/areas/:id/notes/:note", areaController.DeleteNote)

		// 作物批次
		app.GET("/crops", cropController.GetCrops)
		app.GET("/crops/archives", cropController.GetArchivedCrops)
		app.POST("/crops", cropController.SaveCrop)
		app.GET("/crops/:id", cropController.GetCrop)
		app.PUT("/crops/:id", cropController.SaveCrop)
		app.POST("/crops/:id/move", cropController.MoveCrop)
		app.POST("/crops/:id/harvest", cropController.HarvestCrop)
		app.POST("/crops/:id/dump", cropController.DumpCrop)
		app.POST("/crops/:id/water", cropController.WaterCrop)
		app.POST("/crops/:id/photos", cropController.UploadPhoto)
		app.POST("/crops/:id/notes", cropController.CreateNote)
		app.DELETE("/crops/:id/notes/:note", cropController.DeleteNote)
		app.GET("/crops/:id/activities", cropController.GetActivities)

		// 库存物料
		app.GET("/materials", materialController.GetMaterials)
		app.GET("/materials/agrochemicals", materialController.GetAgrochemicals)
		app.POST("/materials", materialController.SaveMaterial)
		app.PUT("/materials/:id", materialController.SaveMaterial)

		// 任务
		app.GET("/tasks", taskController.GetTasks)
		app.POST("/tasks", taskController.SaveTask)
		app.PUT("/tasks/:id", taskController.SaveTask)
		app.PUT("/tasks/:id/due", taskController.SetDue)
		app.PUT("/tasks/:id/complete", taskController.SetCompleted)
	}

	return r, nil
}
