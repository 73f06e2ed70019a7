package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RowModel 自增主键的存储行基类，进度/作答这类纯记录表使用。
// 这些行从不直接出现在 API 响应里（对外形态是 SectionCompletion /
// QuestionResponse），所以主键和时间戳一律不进 JSON。
type RowModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UUIDModel 字符串主键的实体基类，用户和板块使用。主键兼作对外标识。
type UUIDModel struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// GenerateUUID 纯缓存模式下注册身份时使用，此时不经过 gorm 钩子
func GenerateUUID() string {
	return uuid.New().String()
}
