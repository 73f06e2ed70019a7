package database

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weblearn_backend/internal/config"
	"weblearn_backend/internal/content"
	"weblearn_backend/internal/model"
)

// InitDB 连接远端记录库并迁移表结构。调用方决定连接失败是否致命：
// 记录库不可用时平台以纯缓存模式运行。
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Section{},
		&model.UserSectionProgress{},
		&model.UserQuestionResponse{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 板块表为空时按内容表种子数据初始化，保证 section_number -> id 的解析始终可用
	var count int64
	db.Model(&model.Section{}).Count(&count)
	if count == 0 {
		for _, sec := range content.AllSections() {
			row := &model.Section{
				SectionNumber: sec.Number,
				Title:         sec.Title,
				Description:   sec.Description,
				Difficulty:    sec.Difficulty,
				Duration:      sec.Duration,
			}
			db.Create(row)
		}
		log.Println("Seeded section metadata")
	}

	return db, nil
}
