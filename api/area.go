package api

import (
	"context"
	"io"
	"net/http"

	"go-tania/client"
	"go-tania/models"
)

// Photo 上传的图片
type Photo struct {
	FileName string
	Content  io.Reader
}

func areaForm(ar models.Area, photo *Photo) *client.Multipart {
	body := &client.Multipart{}
	body.Add("name", ar.Name)
	body.Add("size", formatFloat(ar.Size))
	body.Add("size_unit", ar.SizeUnit)
	body.Add("type", ar.Type)
	body.Add("location", ar.Location)
	body.Add("reservoir_id", ar.ReservoirID)
	body.Add("farm_id", ar.FarmID)
	if photo != nil {
		body.Attach("photo", photo.FileName, photo.Content)
	}
	return body
}

// CreateArea 创建区域，使用 multipart 上传图片
func (a *API) CreateArea(ctx context.Context, farmID string, ar models.Area, photo *Photo) (models.Area, error) {
	ar.FarmID = farmID
	return sendData[models.Area](ctx, a.c, http.MethodPost, "farms/"+farmID+"/areas", areaForm(ar, photo))
}

// UpdateArea 更新区域
func (a *API) UpdateArea(ctx context.Context, ar models.Area, photo *Photo) (models.Area, error) {
	return sendData[models.Area](ctx, a.c, http.MethodPut, "farms/areas/"+ar.UID, areaForm(ar, photo))
}

// FetchAreas 获取农场的全部区域
func (a *API) FetchAreas(ctx context.Context, farmID string) ([]models.Area, error) {
	return getData[[]models.Area](ctx, a.c, "farms/"+farmID+"/areas")
}

// FindAreaByUID 获取单个区域
func (a *API) FindAreaByUID(ctx context.Context, farmID, areaID string) (models.Area, error) {
	return getData[models.Area](ctx, a.c, "farms/"+farmID+"/areas/"+areaID)
}

// CreateAreaNote 添加区域备注
func (a *API) CreateAreaNote(ctx context.Context, n models.Note) (models.Area, error) {
	return sendData[models.Area](ctx, a.c, http.MethodPost, "farms/areas/"+n.ObjUID+"/notes", noteForm(n))
}

// DeleteAreaNote 删除区域备注
func (a *API) DeleteAreaNote(ctx context.Context, n models.Note) (models.Area, error) {
	return sendData[models.Area](ctx, a.c, http.MethodDelete, "farms/areas/"+n.ObjUID+"/notes/"+n.UID, nil)
}

// AreaPhotoURL 区域图片的访问地址
func AreaPhotoURL(farmID, areaID string) string {
	return client.DefaultAPIPrefix + "/farms/" + farmID + "/areas/" + areaID + "/photos"
}
