package api

import (
	"context"
	"net/http"

	"go-tania/client"
	"go-tania/models"
)

func reservoirForm(r models.Reservoir) client.Form {
	form := client.Form{
		"name": {r.Name},
		"type": {r.Type},
	}
	if r.HasCapacity() {
		form["capacity"] = []string{formatFloat(r.Capacity)}
	}
	return form
}

func noteForm(n models.Note) client.Form {
	return client.Form{
		"obj_uid": {n.ObjUID},
		"content": {n.Content},
	}
}

// CreateReservoir 创建水源
func (a *API) CreateReservoir(ctx context.Context, farmID string, r models.Reservoir) (models.Reservoir, error) {
	return sendData[models.Reservoir](ctx, a.c, http.MethodPost, "farms/"+farmID+"/reservoirs", reservoirForm(r))
}

// UpdateReservoir 更新水源
func (a *API) UpdateReservoir(ctx context.Context, r models.Reservoir) (models.Reservoir, error) {
	return sendData[models.Reservoir](ctx, a.c, http.MethodPut, "farms/reservoirs/"+r.UID, reservoirForm(r))
}

// FetchReservoirs 获取农场的全部水源
func (a *API) FetchReservoirs(ctx context.Context, farmID string) ([]models.Reservoir, error) {
	return getData[[]models.Reservoir](ctx, a.c, "farms/"+farmID+"/reservoirs")
}

// FindReservoirByUID 获取单个水源
func (a *API) FindReservoirByUID(ctx context.Context, farmID, reservoirID string) (models.Reservoir, error) {
	return getData[models.Reservoir](ctx, a.c, "farms/"+farmID+"/reservoirs/"+reservoirID)
}

// CreateReservoirNote 添加水源备注
func (a *API) CreateReservoirNote(ctx context.Context, n models.Note) (models.Reservoir, error) {
	return sendData[models.Reservoir](ctx, a.c, http.MethodPost, "farms/reservoirs/"+n.ObjUID+"/notes", noteForm(n))
}

// DeleteReservoirNote 删除水源备注
func (a *API) DeleteReservoirNote(ctx context.Context, n models.Note) (models.Reservoir, error) {
	return sendData[models.Reservoir](ctx, a.c, http.MethodDelete, "farms/reservoirs/"+n.ObjUID+"/notes/"+n.UID, nil)
}
