package models

// Country 国家
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City 城市
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
