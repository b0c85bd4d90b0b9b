package main

import (
	"log"

	"barhub/internal/config"
	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/repository/mysql"
	"barhub/internal/repository/redis"
	"barhub/internal/router"
	"barhub/internal/service"
)

func main() {
	cfg := config.Load()

	if err := mysql.InitDB(cfg.DatabaseDSN); err != nil {
		log.Fatalf("mysql init failed: %v", err)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Bar{},
		&model.BarMember{},
		&model.Post{},
		&model.Reply{},
		&model.UserLike{},
		&model.UserFavorite{},
		&model.AdminAction{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	// kafka 未配置 broker 时跳过，审核事件只落库不外发
	var producer service.EventProducer
	if len(cfg.KafkaBrokers) > 0 {
		kp := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		defer kp.Close()
		producer = kp
	}

	r := router.InitRouter(cfg, producer)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
