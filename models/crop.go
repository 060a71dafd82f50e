package models

// 作物批次状态
const (
	CropStatusActive   = "ACTIVE"
	CropStatusArchived = "ARCHIVED"
)

// 作物批次类型
const (
	CropTypeSeeding = "SEEDING"
	CropTypeGrowing = "GROWING"
)

// 种植容器
const (
	ContainerTray = "TRAY"
	ContainerPot  = "POT"
)

// 收获方式
const (
	HarvestAll     = "ALL"
	HarvestPartial = "PARTIAL"
)

// Crop 作物批次模型
type Crop struct {
	UID           string `json:"uid"`
	BatchID       string `json:"batch_id"`
	AreaID        string `json:"initial_area"`
	CropType      string `json:"crop_type"`
	PlantType     string `json:"plant_type"`
	Variety       string `json:"variety"`
	Quantity      int    `json:"quantity"`
	ContainerType string `json:"container_type"`
	Status        string `json:"status"`
	CreatedDate   string `json:"created_date,omitempty"`
	Notes         []Note `json:"notes,omitempty"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (c Crop) IsPersisted() bool {
	return c.UID != ""
}

// GetUID 返回作物批次uid
func (c Crop) GetUID() string {
	return c.UID
}

// CropActivity 作物批次的操作记录
type CropActivity struct {
	UID          string         `json:"uid"`
	BatchID      string         `json:"batch_id"`
	ActivityType map[string]any `json:"activity_type"`
	Description  string         `json:"description"`
	CreatedDate  string         `json:"created_date"`
}

// CropMovement 移栽请求
type CropMovement struct {
	SourceAreaID string `json:"source_area_id"`
	DestAreaID   string `json:"destination_area_id"`
	Quantity     int    `json:"quantity"`
}

// CropHarvest 收获请求
type CropHarvest struct {
	SourceAreaID     string  `json:"source_area_id"`
	HarvestType      string  `json:"harvest_type"`
	ProducedQuantity float64 `json:"produced_quantity"`
	ProducedUnit     string  `json:"produced_unit"`
	Notes            string  `json:"notes"`
}

// CropDump 丢弃请求
type CropDump struct {
	SourceAreaID string `json:"source_area_id"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
}

// CropWatering 浇水请求
type CropWatering struct {
	SourceAreaID string `json:"source_area_id"`
	WateringDate string `json:"watering_date"`
}
