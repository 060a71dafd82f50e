package models

// 任务领域
const (
	TaskDomainArea      = "AREA"
	TaskDomainCrop      = "CROP"
	TaskDomainFinance   = "FINANCE"
	TaskDomainGeneral   = "GENERAL"
	TaskDomainInventory = "INVENTORY"
	TaskDomainReservoir = "RESERVOIR"
)

// 任务优先级
const (
	TaskPriorityNormal = "NORMAL"
	TaskPriorityUrgent = "URGENT"
)

// 任务状态
const (
	TaskStatusCreated   = "CREATED"
	TaskStatusCompleted = "COMPLETED"
	TaskStatusCancelled = "CANCELLED"
)

// Task 任务模型
type Task struct {
	UID         string `json:"uid"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	AssetID     string `json:"asset_id"`
	Status      string `json:"status"`
	IsDue       bool   `json:"is_due"`
}

// IsPersisted uid 为空表示尚未保存到后端
func (t Task) IsPersisted() bool {
	return t.UID != ""
}

// GetUID 返回任务uid
func (t Task) GetUID() string {
	return t.UID
}
