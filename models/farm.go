package models

// Farm 农场模型
type Farm struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (f Farm) IsPersisted() bool {
	return f.UID != ""
}

// GetUID 返回农场uid
func (f Farm) GetUID() string {
	return f.UID
}

// FarmType 农场类型
type FarmType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CropInformation 农场作物汇总信息
type CropInformation struct {
	TotalHarvestProduced float64 `json:"total_harvest_produced"`
	TotalPlantVariety    int     `json:"total_plant_variety"`
}
