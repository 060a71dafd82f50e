package api

import (
	"context"
	"net/http"
	"strconv"

	"go-tania/client"
	"go-tania/models"
)

func cropForm(c models.Crop) client.Form {
	return client.Form{
		"crop_type":          {c.CropType},
		"plant_type":         {c.PlantType},
		"name":               {c.Variety},
		"container_quantity": {strconv.Itoa(c.Quantity)},
		"container_type":     {c.ContainerType},
	}
}

// CreateCrop 在区域中创建作物批次
func (a *API) CreateCrop(ctx context.Context, c models.Crop) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/areas/"+c.AreaID+"/crops", cropForm(c))
}

// UpdateCrop 更新作物批次
func (a *API) UpdateCrop(ctx context.Context, c models.Crop) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPut, "farms/crops/"+c.UID, cropForm(c))
}

// FetchAreaCrops 获取区域中的作物批次
func (a *API) FetchAreaCrops(ctx context.Context, areaID string) ([]models.Crop, error) {
	return getData[[]models.Crop](ctx, a.c, "farms/areas/"+areaID+"/crops")
}

// FetchCrops 分页获取农场作物批次
func (a *API) FetchCrops(ctx context.Context, farmID string, page int, status string) (Page[models.Crop], error) {
	q := pageQuery(page)
	q.Set("status", status)
	return getPage[models.Crop](ctx, a.c, withQuery("farms/"+farmID+"/crops", q))
}

// FetchArchivedCrops 分页获取已归档的作物批次
func (a *API) FetchArchivedCrops(ctx context.Context, farmID string, page int) (Page[models.Crop], error) {
	return getPage[models.Crop](ctx, a.c, withQuery("farms/"+farmID+"/crops/archives", pageQuery(page)))
}

// FindCropByUID 获取单个作物批次
func (a *API) FindCropByUID(ctx context.Context, cropID string) (models.Crop, error) {
	return getData[models.Crop](ctx, a.c, "farms/crops/"+cropID)
}

// MoveCrop 移栽
func (a *API) MoveCrop(ctx context.Context, cropID string, m models.CropMovement) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/crops/"+cropID+"/move", client.Form{
		"source_area_id":      {m.SourceAreaID},
		"destination_area_id": {m.DestAreaID},
		"quantity":            {strconv.Itoa(m.Quantity)},
	})
}

// HarvestCrop 收获
func (a *API) HarvestCrop(ctx context.Context, cropID string, h models.CropHarvest) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/crops/"+cropID+"/harvest", client.Form{
		"source_area_id":    {h.SourceAreaID},
		"harvest_type":      {h.HarvestType},
		"produced_quantity": {formatFloat(h.ProducedQuantity)},
		"produced_unit":     {h.ProducedUnit},
		"notes":             {h.Notes},
	})
}

// DumpCrop 丢弃
func (a *API) DumpCrop(ctx context.Context, cropID string, d models.CropDump) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/crops/"+cropID+"/dump", client.Form{
		"source_area_id": {d.SourceAreaID},
		"quantity":       {strconv.Itoa(d.Quantity)},
		"notes":          {d.Notes},
	})
}

// WaterCrop 浇水
func (a *API) WaterCrop(ctx context.Context, cropID string, w models.CropWatering) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/crops/"+cropID+"/water", client.Form{
		"source_area_id": {w.SourceAreaID},
		"watering_date":  {w.WateringDate},
	})
}

// PhotoCrop 上传作物图片
func (a *API) PhotoCrop(ctx context.Context, cropID, description string, photo Photo) error {
	body := &client.Multipart{}
	body.Attach("photo", photo.FileName, photo.Content)
	body.Add("description", description)
	return a.c.Post(ctx, "farms/crops/"+cropID+"/photos", body, nil)
}

// CreateCropNote 添加作物备注
func (a *API) CreateCropNote(ctx context.Context, n models.Note) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodPost, "farms/crops/"+n.ObjUID+"/notes", noteForm(n))
}

// DeleteCropNote 删除作物备注
func (a *API) DeleteCropNote(ctx context.Context, n models.Note) (models.Crop, error) {
	return sendData[models.Crop](ctx, a.c, http.MethodDelete, "farms/crops/"+n.ObjUID+"/notes/"+n.UID, nil)
}

// FetchActivities 获取作物批次的操作记录
func (a *API) FetchActivities(ctx context.Context, cropID string) ([]models.CropActivity, error) {
	return getData[[]models.CropActivity](ctx, a.c, "farms/crops/"+cropID+"/activities")
}
