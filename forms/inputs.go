package forms

import (
	"go-tania/api"
	"go-tania/models"
)

// LoginInput 登录表单
type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// PasswordInput 修改密码表单
type PasswordInput struct {
	OldPassword     string `form:"old_password" json:"old_password" binding:"required"`
	NewPassword     string `form:"new_password" json:"new_password" binding:"required,min=5"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// ToAPI 转换为接口参数
func (in PasswordInput) ToAPI() api.PasswordChange {
	return api.PasswordChange{
		OldPassword:     in.OldPassword,
		NewPassword:     in.NewPassword,
		ConfirmPassword: in.ConfirmPassword,
	}
}

// FarmInput 农场表单
type FarmInput struct {
	UID         string `form:"uid" json:"uid"`
	Name        string `form:"name" json:"name" binding:"required,alpha_num_space,max=100"`
	Description string `form:"description" json:"description"`
	Type        string `form:"type" json:"type" binding:"required"`
	Latitude    string `form:"latitude" json:"latitude" binding:"required,latitude"`
	Longitude   string `form:"longitude" json:"longitude" binding:"required,longitude"`
	Country     string `form:"country" json:"country" binding:"required"`
	City        string `form:"city" json:"city" binding:"required"`
}

// ToModel 转换为模型
func (in FarmInput) ToModel() models.Farm {
	return models.Farm{
		UID:         in.UID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Country:     in.Country,
		City:        in.City,
	}
}

// ReservoirInput 水源表单，桶装水源必须填写容量
type ReservoirInput struct {
	UID      string  `form:"uid" json:"uid"`
	Name     string  `form:"name" json:"name" binding:"required,alpha_num_space,max=100"`
	Type     string  `form:"type" json:"type" binding:"required,oneof=BUCKET TAP"`
	Capacity float64 `form:"capacity" json:"capacity" binding:"required_if=Type BUCKET,gte=0"`
}

// ToModel 转换为模型
func (in ReservoirInput) ToModel() models.Reservoir {
	r := models.Reservoir{UID: in.UID, Name: in.Name, Type: in.Type}
	if r.HasCapacity() {
		r.Capacity = in.Capacity
	}
	return r
}

// AreaFields 区域的基本字段，引导流程中水源由上一步决定
type AreaFields struct {
	Name     string  `form:"name" json:"name" binding:"required,alpha_num_space,max=100"`
	Size     float64 `form:"size" json:"size" binding:"required,gt=0"`
	SizeUnit string  `form:"size_unit" json:"size_unit" binding:"required,oneof=HECTARE SQUARE_METER"`
	Type     string  `form:"type" json:"type" binding:"required,oneof=SEEDING GROWING"`
	Location string  `form:"location" json:"location" binding:"required,oneof=OUTDOOR INDOOR"`
}

// ToModel 转换为模型
func (in AreaFields) ToModel() models.Area {
	return models.Area{
		Name:     in.Name,
		Size:     in.Size,
		SizeUnit: in.SizeUnit,
		Type:     in.Type,
		Location: in.Location,
	}
}

// AreaInput 区域表单，图片单独读取
type AreaInput struct {
	UID string `form:"uid" json:"uid"`
	AreaFields
	ReservoirID string `form:"reservoir_id" json:"reservoir_id" binding:"required"`
}

// ToModel 转换为模型
func (in AreaInput) ToModel() models.Area {
	ar := in.AreaFields.ToModel()
	ar.UID = in.UID
	ar.ReservoirID = in.ReservoirID
	return ar
}

// CropInput 作物批次表单
type CropInput struct {
	UID           string `form:"uid" json:"uid"`
	AreaID        string `form:"initial_area" json:"initial_area" binding:"required"`
	CropType      string `form:"crop_type" json:"crop_type" binding:"required,oneof=SEEDING GROWING"`
	PlantType     string `form:"plant_type" json:"plant_type" binding:"required"`
	Variety       string `form:"name" json:"name" binding:"required"`
	Quantity      int    `form:"container_quantity" json:"container_quantity" binding:"required,gt=0"`
	ContainerType string `form:"container_type" json:"container_type" binding:"required,oneof=TRAY POT"`
}

// ToModel 转换为模型
func (in CropInput) ToModel() models.Crop {
	c := models.StubCrop()
	c.UID = in.UID
	c.AreaID = in.AreaID
	c.CropType = in.CropType
	c.PlantType = in.PlantType
	c.Variety = in.Variety
	c.Quantity = in.Quantity
	c.ContainerType = in.ContainerType
	return c
}

// MoveInput 移栽表单
type MoveInput struct {
	SourceAreaID string `form:"source_area_id" json:"source_area_id" binding:"required"`
	DestAreaID   string `form:"destination_area_id" json:"destination_area_id" binding:"required,nefield=SourceAreaID"`
	Quantity     int    `form:"quantity" json:"quantity" binding:"required,gt=0"`
}

// ToModel 转换为模型
func (in MoveInput) ToModel() models.CropMovement {
	return models.CropMovement{SourceAreaID: in.SourceAreaID, DestAreaID: in.DestAreaID, Quantity: in.Quantity}
}

// HarvestInput 收获表单
type HarvestInput struct {
	SourceAreaID     string  `form:"source_area_id" json:"source_area_id" binding:"required"`
	HarvestType      string  `form:"harvest_type" json:"harvest_type" binding:"required,oneof=ALL PARTIAL"`
	ProducedQuantity float64 `form:"produced_quantity" json:"produced_quantity" binding:"required,gt=0"`
	ProducedUnit     string  `form:"produced_unit" json:"produced_unit" binding:"required"`
	Notes            string  `form:"notes" json:"notes"`
}

// ToModel 转换为模型
func (in HarvestInput) ToModel() models.CropHarvest {
	return models.CropHarvest{
		SourceAreaID:     in.SourceAreaID,
		HarvestType:      in.HarvestType,
		ProducedQuantity: in.ProducedQuantity,
		ProducedUnit:     in.ProducedUnit,
		Notes:            in.Notes,
	}
}

// DumpInput 丢弃表单
type DumpInput struct {
	SourceAreaID string `form:"source_area_id" json:"source_area_id" binding:"required"`
	Quantity     int    `form:"quantity" json:"quantity" binding:"required,gt=0"`
	Notes        string `form:"notes" json:"notes"`
}

// ToModel 转换为模型
func (in DumpInput) ToModel() models.CropDump {
	return models.CropDump{SourceAreaID: in.SourceAreaID, Quantity: in.Quantity, Notes: in.Notes}
}

// WaterInput 浇水表单
type WaterInput struct {
	SourceAreaID string `form:"source_area_id" json:"source_area_id" binding:"required"`
	WateringDate string `form:"watering_date" json:"watering_date" binding:"required,datetime=2006-01-02"`
}

// ToModel 转换为模型
func (in WaterInput) ToModel() models.CropWatering {
	return models.CropWatering{SourceAreaID: in.SourceAreaID, WateringDate: in.WateringDate}
}

// MaterialInput 物料表单
type MaterialInput struct {
	UID          string  `form:"uid" json:"uid"`
	Type         string  `form:"type" json:"type" binding:"required,oneof=SEED PLANT GROWING_MEDIUM AGROCHEMICAL LABEL_AND_CROP_SUPPORT SEEDING_CONTAINER POST_HARVEST_SUPPLY OTHER"`
	TypeDetail   string  `form:"type_detail" json:"type_detail"`
	Name         string  `form:"name" json:"name" binding:"required"`
	Quantity     float64 `form:"quantity" json:"quantity" binding:"required,gt=0"`
	QuantityUnit string  `form:"quantity_unit" json:"quantity_unit" binding:"required"`
	Price        float64 `form:"price_per_unit" json:"price_per_unit" binding:"gte=0"`
}

// ToModel 转换为模型
func (in MaterialInput) ToModel() models.Material {
	return models.Material{
		UID:          in.UID,
		Type:         in.Type,
		TypeDetail:   in.TypeDetail,
		Name:         in.Name,
		Quantity:     in.Quantity,
		QuantityUnit: in.QuantityUnit,
		Price:        in.Price,
	}
}

// TaskInput 任务表单
type TaskInput struct {
	UID         string `form:"uid" json:"uid"`
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category" binding:"required"`
	Priority    string `form:"priority" json:"priority" binding:"required,oneof=NORMAL URGENT"`
	DueDate     string `form:"due_date" json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Domain      string `form:"domain" json:"domain" binding:"required,oneof=AREA CROP FINANCE GENERAL INVENTORY RESERVOIR"`
	AssetID     string `form:"asset_id" json:"asset_id" binding:"required_unless=Domain GENERAL"`
}

// ToModel 转换为模型
func (in TaskInput) ToModel() models.Task {
	t := models.StubTask()
	t.UID = in.UID
	t.Title = in.Title
	t.Description = in.Description
	t.Category = in.Category
	t.Priority = in.Priority
	t.DueDate = in.DueDate
	t.Domain = in.Domain
	t.AssetID = in.AssetID
	return t
}

// NoteInput 备注表单
type NoteInput struct {
	Content string `form:"content" json:"content" binding:"required"`
}
