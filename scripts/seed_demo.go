// 演示数据灌入脚本
//
// 往已配置的远端记录库里写入一批示例学员和成绩，方便在新环境演示管理面板。
// 正式环境不要执行。
//
// 用法: go run scripts/seed_demo.go
package main

import (
	"context"
	"fmt"
	"log"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/internal/service"
	"weblearn_backend/pkg/database"
	"weblearn_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 走和服务进程同一条配置加载路径，下划线键才能正确映射到 mapstructure 标签
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg)

	if !cfg.Database.Configured() {
		log.Fatal("远端记录库未配置，无处灌入演示数据")
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	records := service.NewRecordService(db, userRepo, sectionRepo, progressRepo, responseRepo)

	sample := service.NewSampleService(&cfg.Demo)
	modules := sample.ModuleScores()

	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)

	userIDs := make(map[string]string) // 邮箱 -> 库内ID
	var users, completions int

	for _, module := range modules {
		for _, p := range module.Participants {
			id, seen := userIDs[p.Email]
			if !seen {
				existing, err := userRepo.FindByEmail(p.Email)
				if err == nil {
					id = existing.ID
				} else {
					user := &model.User{
						Name:     p.Name,
						Email:    p.Email,
						Password: string(hashed),
						Role:     model.Student,
					}
					if err := userRepo.Create(user); err != nil {
						log.Printf("创建演示用户 %s 失败: %v", p.Email, err)
						continue
					}
					id = user.ID
					users++
				}
				userIDs[p.Email] = id
			}

			if p.Status != model.StatusCompleted || p.CompletedAt == nil {
				continue
			}
			rec := &model.SectionCompletion{
				SectionNumber:    p.SectionNumber,
				SectionTitle:     p.SectionTitle,
				TotalQuestions:   p.QuestionsAnswered,
				QuestionsCorrect: p.QuestionsCorrect,
				Score:            p.QuestionsCorrect,
				Accuracy:         p.Accuracy,
				TimeSpent:        p.TimeSpent,
				CompletedAt:      *p.CompletedAt,
			}
			if records.SaveCompletion(ctx, id, rec) {
				completions++
			}
		}
	}

	fmt.Printf("演示数据灌入完成: 新建用户 %d 个, 完成记录 %d 条\n", users, completions)
}
