// 手动回填用户最后活跃时间脚本
//
// 正常路径下 last_activity 在每次评分写入事务内更新。
// 此脚本按观影台账逐用户重算，仅用于历史数据导入或修复后的对账。
//
// 用法: go run scripts/backfill_stats.go

package main

import (
	"log"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/pkg/database"
	"movie_tracker_backend/pkg/logger"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var profiles []model.Profile
	if err := db.Find(&profiles).Error; err != nil {
		log.Fatalf("读取用户资料失败: %v", err)
	}

	log.Printf("开始回填 %d 个用户的最后活跃时间...", len(profiles))

	updated := 0
	for _, p := range profiles {
		var last model.UserMovieView
		err := db.Where("user_id = ?", p.UserID).
			Order("date_recorded DESC").
			First(&last).Error
		if err != nil {
			// 没有任何台账记录的用户保持原值
			continue
		}

		if err := db.Model(&model.Profile{}).
			Where("user_id = ?", p.UserID).
			Update("last_activity", last.DateRecorded).Error; err != nil {
			log.Printf("用户 %d 回填失败: %v", p.UserID, err)
			continue
		}
		updated++
	}

	log.Printf("完成！共更新 %d 个用户", updated)
}
