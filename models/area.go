package models

// 区域类型
const (
	AreaTypeSeeding = "SEEDING"
	AreaTypeGrowing = "GROWING"
)

// 区域位置
const (
	AreaLocationOutdoor = "OUTDOOR"
	AreaLocationIndoor  = "INDOOR"
)

// 面积单位
const (
	SizeUnitHectare     = "HECTARE"
	SizeUnitSquareMeter = "SQUARE_METER"
)

// Area 种植区域模型
type Area struct {
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Size        float64 `json:"size"`
	SizeUnit    string  `json:"size_unit"`
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	ReservoirID string  `json:"reservoir_id"`
	FarmID      string  `json:"farm_id"`
	Photo       string  `json:"photo"`
	Notes       []Note  `json:"notes,omitempty"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (a Area) IsPersisted() bool {
	return a.UID != ""
}

// GetUID 返回区域uid
func (a Area) GetUID() string {
	return a.UID
}
