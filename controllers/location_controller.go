package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/utils"
)

// LocationController 国家和城市
type LocationController struct {
	Logger *zap.Logger
}

// NewLocationController 创建一个新的LocationController实例
func NewLocationController(logger *zap.Logger) *LocationController {
	return &LocationController{Logger: logger}
}

// GetCountries 国家列表
func (c *LocationController) GetCountries(ctx *gin.Context) {
	countries, err := currentSession(ctx).Store.Location.FetchCountries(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, countries)
}

// GetCities 某个国家的城市
func (c *LocationController) GetCities(ctx *gin.Context) {
	cities, err := currentSession(ctx).Store.Location.FetchCities(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, cities)
}
