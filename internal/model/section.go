package model

// Section 板块元数据表。写入进度/答题记录前必须先把板块编号解析成该表的主键。
type Section struct {
	UUIDModel
	SectionNumber int    `gorm:"uniqueIndex;not null" json:"sectionNumber"`
	Title         string `gorm:"size:200;not null" json:"title"`
	Description   string `gorm:"size:500" json:"description"`
	Difficulty    string `gorm:"size:20" json:"difficulty"`
	Duration      int    `json:"duration"` // 预计用时（分钟）
}

func (Section) TableName() string {
	return "sections"
}
