package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Category struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name" json:"name"`
	Icon      string    `gorm:"type:varchar(50)" json:"icon"`
	Color     string    `gorm:"type:varchar(9)" json:"color"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

type SubCategory struct {
	Id         ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	CategoryId ulid.ULID `gorm:"type:varchar(26);index:idx_subcategories_category_id;not null" json:"categoryId"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}
