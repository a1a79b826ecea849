package model

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
	Color       string `gorm:"size:20" json:"color"`
	IsActive    bool   `gorm:"default:true;not null" json:"isActive"`
}

func (Category) TableName() string {
	return "categories"
}
