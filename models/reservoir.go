package models

// 水源类型
const (
	ReservoirTypeBucket = "BUCKET"
	ReservoirTypeTap    = "TAP"
)

// Reservoir 水源模型
type Reservoir struct {
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Capacity    float64 `json:"capacity"`
	FarmID      string  `json:"farm_id"`
	Notes       []Note  `json:"notes,omitempty"`
	CreatedDate string  `json:"created_date,omitempty"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (r Reservoir) IsPersisted() bool {
	return r.UID != ""
}

// GetUID 返回水源uid
func (r Reservoir) GetUID() string {
	return r.UID
}

// HasCapacity 只有桶装水源才有容量
func (r Reservoir) HasCapacity() bool {
	return r.Type == ReservoirTypeBucket
}
