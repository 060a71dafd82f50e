package models

// 物料类型
const (
	MaterialTypeSeed                = "SEED"
	MaterialTypePlant               = "PLANT"
	MaterialTypeGrowingMedium       = "GROWING_MEDIUM"
	MaterialTypeAgrochemical        = "AGROCHEMICAL"
	MaterialTypeLabelAndCropSupport = "LABEL_AND_CROP_SUPPORT"
	MaterialTypeSeedingContainer    = "SEEDING_CONTAINER"
	MaterialTypePostHarvestSupply   = "POST_HARVEST_SUPPLY"
	MaterialTypeOther               = "OTHER"
)

// 农药化肥细分类型
const (
	ChemicalTypeFertilizer = "FERTILIZER"
	ChemicalTypePesticide  = "PESTICIDE"
)

// MaterialTypes 全部物料类型
func MaterialTypes() []string {
	return []string{
		MaterialTypeSeed,
		MaterialTypePlant,
		MaterialTypeGrowingMedium,
		MaterialTypeAgrochemical,
		MaterialTypeLabelAndCropSupport,
		MaterialTypeSeedingContainer,
		MaterialTypePostHarvestSupply,
		MaterialTypeOther,
	}
}

// Material 库存物料模型
type Material struct {
	UID          string  `json:"uid"`
	Type         string  `json:"type"`
	TypeDetail   string  `json:"type_detail,omitempty"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantity_unit"`
	Price        float64 `json:"price"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (m Material) IsPersisted() bool {
	return m.UID != ""
}

// GetUID 返回物料uid
func (m Material) GetUID() string {
	return m.UID
}

// InventoryPlantType 可用于种植的物料
type InventoryPlantType struct {
	PlantType string   `json:"plant_type"`
	Names     []string `json:"names"`
}
