package database

import (
	"fmt"
	"log"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate 执行表结构迁移并写入默认类型数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Genre{},
		&model.Person{},
		&model.Movie{},
		&model.MoviePerson{},
		&model.UserMovieView{},
		&model.Friendship{},
		&model.InviteCode{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	// 默认电影类型（目录由外部批量任务填充，类型表先行建好）
	var count int64
	db.Model(&model.Genre{}).Count(&count)
	if count == 0 {
		defaultGenres := []string{
			"Action", "Adventure", "Animation", "Comedy", "Crime",
			"Documentary", "Drama", "Family", "Fantasy", "History",
			"Horror", "Music", "Mystery", "Romance", "Science Fiction",
			"Thriller", "War", "Western",
		}
		for _, name := range defaultGenres {
			db.Create(&model.Genre{Name: name})
		}
	}

	return nil
}
