package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/database"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/config"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/utils"
)

var (
	configFile = flag.String("config", "configs/server.yaml", "配置文件路径")
	dbFile     = flag.String("db", "", "数据库文件路径 (覆盖配置文件)")
	period     = flag.Int("period", 24, "报表周期 (小时)")
	historical = flag.Bool("historical", false, "包含上一周期对比")
	format     = flag.String("format", "json", "导出格式: json/text/html")
	output     = flag.String("o", "", "输出文件路径 (默认输出到标准输出)")
)

func main() {
	flag.Parse()

	// 加载配置，配置文件缺失时使用默认值
	cfg, err := config.LoadServerConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	config.SetGlobalServerConfig(cfg)

	dbPath := cfg.Database.Path
	if *dbFile != "" {
		dbPath = *dbFile
	}

	absPath, err := utils.GetAbsolutePath(dbPath)
	if err != nil {
		log.Fatalf("获取数据库路径失败: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		log.Fatalf("创建数据库目录失败: %v", err)
	}

	// 初始化数据库
	if err := database.InitDatabase(absPath); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	// 生成报表
	reportService := services.NewReportService()
	report, err := reportService.BuildReport(*period, *historical)
	if err != nil {
		log.Fatalf("生成报表失败: %v", err)
	}

	// 导出报表
	exportService := services.NewExportService()
	rendered, err := exportService.Export(report, services.ExportFormat(*format))
	if err != nil {
		log.Fatalf("导出报表失败: %v", err)
	}

	if *output == "" {
		fmt.Println(rendered)
		return
	}

	if err := os.WriteFile(*output, []byte(rendered), 0644); err != nil {
		log.Fatalf("写入输出文件失败: %v", err)
	}
	log.Printf("报表已写入 %s", *output)
}
