package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go-tania/client"
	"go-tania/models"
)

func materialForm(m models.Material) client.Form {
	form := client.Form{
		"name":           {m.Name},
		"quantity":       {formatFloat(m.Quantity)},
		"quantity_unit":  {m.QuantityUnit},
		"price_per_unit": {formatFloat(m.Price)},
	}
	if m.TypeDetail == "" {
		return form
	}
	switch m.Type {
	case models.MaterialTypeSeed, models.MaterialTypePlant:
		form["plant_type"] = []string{m.TypeDetail}
	case models.MaterialTypeAgrochemical:
		form["chemical_type"] = []string{m.TypeDetail}
	case models.MaterialTypeSeedingContainer:
		form["container_type"] = []string{m.TypeDetail}
	}
	return form
}

// materialPath 物料类型在路径中使用小写
func materialPath(m models.Material) string {
	return "farms/inventories/materials/" + strings.ToLower(m.Type)
}

// FetchMaterials 分页获取物料
func (a *API) FetchMaterials(ctx context.Context, page int) (Page[models.Material], error) {
	return getPage[models.Material](ctx, a.c, withQuery("farms/inventories/materials", pageQuery(page)))
}

// FetchAgrochemicalMaterials 按细分类型获取农药化肥
func (a *API) FetchAgrochemicalMaterials(ctx context.Context, typeDetail string) ([]models.Material, error) {
	q := url.Values{
		"type":        {models.MaterialTypeAgrochemical},
		"type_detail": {typeDetail},
	}
	return getData[[]models.Material](ctx, a.c, withQuery("farms/inventories/materials/simple", q))
}

// CreateMaterial 创建物料
func (a *API) CreateMaterial(ctx context.Context, m models.Material) (models.Material, error) {
	return sendData[models.Material](ctx, a.c, http.MethodPost, materialPath(m), materialForm(m))
}

// UpdateMaterial 更新物料
func (a *API) UpdateMaterial(ctx context.Context, m models.Material) (models.Material, error) {
	return sendData[models.Material](ctx, a.c, http.MethodPut, materialPath(m)+"/"+m.UID, materialForm(m))
}
