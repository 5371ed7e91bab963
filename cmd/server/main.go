package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/database"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/routes"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/config"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

var (
	configFile  = flag.String("config", "configs/server.yaml", "配置文件路径")
	versionFlag = flag.Bool("version", false, "显示版本信息")
	help        = flag.Bool("help", false, "显示帮助信息")
	initDB      = flag.Bool("init", false, "初始化数据库和默认数据")
)

// 这些变量可以在构建时通过-ldflags设置
var (
	version   string = "1.0.0"
	buildTime string = "2025-01-01"
)

const (
	AppName = "LNMT Report Server"
)

func init() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *versionFlag {
		log.Printf("%s v%s (built at %s)", AppName, version, buildTime)
		os.Exit(0)
	}

	// 显示帮助信息
	if *help {
		flag.Usage()
		os.Exit(0)
	}
}

func main() {
	log.Printf("启动 %s v%s", AppName, version)

	// 加载配置
	cfg, err := config.LoadServerConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 设置全局配置
	config.SetGlobalServerConfig(cfg)

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 处理数据库路径 - 转换为绝对路径
	dbPath, err := utils.GetAbsolutePath(cfg.Database.Path)
	if err != nil {
		log.Fatalf("获取数据库路径失败: %v", err)
	}

	// 确保数据库目录存在
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("创建数据库目录失败: %v", err)
	}

	log.Printf("数据库路径: %s", dbPath)

	// 初始化数据库
	if err := database.InitDatabase(dbPath); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	log.Println("数据库初始化成功")

	if *initDB {
		log.Println("数据库初始化完成")
		return // 初始化完成后退出
	}

	// 创建服务层
	sessionService := services.NewSessionService()
	usageService := services.NewUsageService()
	reportService := services.NewReportServiceWith(sessionService, usageService)

	// 启动基于Cron的报表刷新调度器
	scheduler := services.NewReportScheduler(
		reportService,
		cfg.Report.RefreshSpec,
		cfg.Report.RetentionSpec,
		cfg.Report.DefaultPeriodHours,
		cfg.Report.IncludeHistorical,
		cfg.Report.RetentionDays,
	)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("启动定时任务调度器失败: %v", err)
	}

	dashboardService := services.NewDashboardService(scheduler)

	// 启动时先生成一次报表
	if err := scheduler.RefreshReport(); err != nil {
		log.Printf("首次生成报表失败: %v", err)
	}

	// 设置路由
	routes.Version = version
	router := routes.SetupRoutes(reportService, sessionService, dashboardService, scheduler)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           cfg.App.Listen,
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.App.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.App.IdleTimeout) * time.Second,
		MaxHeaderBytes: cfg.App.MaxHeaderBytes << 20, // MB to bytes
	}

	// 启动HTTP服务器
	go func() {
		log.Printf("HTTP服务器启动在 %s", cfg.App.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP服务器启动失败: %v", err)
		}
	}()

	// 在服务关闭时停止调度器
	defer scheduler.Stop()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")

	// 优雅关闭
	gracefulShutdown(server)
}

// gracefulShutdown 优雅关闭服务器
func gracefulShutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器关闭失败: %v", err)
	}

	// 关闭数据库连接
	if err := database.Close(); err != nil {
		log.Printf("关闭数据库失败: %v", err)
	}

	log.Println("服务器已关闭")
}
