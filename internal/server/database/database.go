package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDatabase 初始化数据库连接
func InitDatabase(dbPath string) error {
	var err error

	// 确保数据库目录存在
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("创建数据库目录失败: %w", err)
	}

	// 检查是否为新数据库
	_, err = os.Stat(dbPath)
	isNewDB := os.IsNotExist(err)

	// 连接SQLite数据库 - 默认使用Silent日志级别
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 自动迁移数据库结构
	if err := models.AutoMigrate(DB); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 新数据库写入默认数据
	if isNewDB {
		log.Println("检测到新数据库，正在初始化默认数据...")
		if err := InitDefaultData(); err != nil {
			return fmt.Errorf("初始化默认数据失败: %w", err)
		}
		log.Println("默认数据初始化完成")
	}

	return nil
}

// InitDefaultData 初始化默认数据
func InitDefaultData() error {
	if err := initDefaultVLANs(); err != nil {
		return fmt.Errorf("初始化默认VLAN失败: %w", err)
	}
	return nil
}

// initDefaultVLANs 初始化默认VLAN注册表
func initDefaultVLANs() error {
	var count int64
	if err := DB.Model(&models.VLAN{}).Count(&count).Error; err != nil {
		return fmt.Errorf("检查VLAN数量失败: %w", err)
	}

	// 如果已有VLAN记录，跳过
	if count > 0 {
		return nil
	}

	for _, vlan := range models.GetDefaultVLANs() {
		if err := DB.Create(&vlan).Error; err != nil {
			return fmt.Errorf("创建默认VLAN %d 失败: %w", vlan.VlanID, err)
		}
	}

	log.Println("初始化默认VLAN注册表完成")
	return nil
}

// Close 关闭数据库连接
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
