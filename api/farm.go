package api

import (
	"context"
	"net/http"

	"go-tania/client"
	"go-tania/models"
)

func farmForm(f models.Farm) client.Form {
	return client.Form{
		"name":        {f.Name},
		"description": {f.Description},
		"farm_type":   {f.Type},
		"latitude":    {f.Latitude},
		"longitude":   {f.Longitude},
		"country":     {f.Country},
		"city":        {f.City},
	}
}

// FetchFarms 获取全部农场
func (a *API) FetchFarms(ctx context.Context) ([]models.Farm, error) {
	farms, err := getData[[]models.Farm](ctx, a.c, "farms")
	if farms == nil {
		farms = []models.Farm{}
	}
	return farms, err
}

// CreateFarm 创建农场
func (a *API) CreateFarm(ctx context.Context, f models.Farm) (models.Farm, error) {
	return sendData[models.Farm](ctx, a.c, http.MethodPost, "farms", farmForm(f))
}

// UpdateFarm 更新农场
func (a *API) UpdateFarm(ctx context.Context, f models.Farm) (models.Farm, error) {
	return sendData[models.Farm](ctx, a.c, http.MethodPut, "farms/"+f.UID, farmForm(f))
}

// FetchFarmTypes 获取农场类型，该接口直接返回数组
func (a *API) FetchFarmTypes(ctx context.Context) ([]models.FarmType, error) {
	var types []models.FarmType
	err := a.c.Get(ctx, "farms/types", &types)
	return types, err
}

// FetchFarmInventories 获取可种植的物料
func (a *API) FetchFarmInventories(ctx context.Context) ([]models.InventoryPlantType, error) {
	return getData[[]models.InventoryPlantType](ctx, a.c, "farms/inventories/materials/available_plant_type")
}

// FetchCropInformation 获取农场作物汇总
func (a *API) FetchCropInformation(ctx context.Context, farmID string) (models.CropInformation, error) {
	return getData[models.CropInformation](ctx, a.c, "farms/"+farmID+"/crops/information")
}
