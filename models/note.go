package models

// Note 水源、区域、作物的备注
type Note struct {
	UID         string `json:"uid"`
	ObjUID      string `json:"obj_uid"`
	Content     string `json:"content"`
	CreatedDate string `json:"created_date,omitempty"`
}
