package routes

import (
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/handlers"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/metrics"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/middleware"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version 构建版本号，由main注入
var Version = "dev"

// SetupRoutes 设置服务端路由
func SetupRoutes(
	reportService *services.ReportService,
	sessionService *services.SessionService,
	dashboardService *services.DashboardService,
	scheduler *services.ReportScheduler,
) *gin.Engine {
	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
	r.Use(middleware.TimeoutMiddleware())

	// 创建处理器
	reportHandler := handlers.NewReportHandler(reportService, sessionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "LNMT Report Server is running",
		})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version": Version,
		})
	})

	// Prometheus指标，使用独立registry避免默认采集器干扰
	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewExporter(scheduler))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API路由
	api := r.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.GetReport)
			reports.GET("/export", reportHandler.ExportReport)
			reports.GET("/devices", reportHandler.GetDeviceReports)
			reports.GET("/vlans", reportHandler.GetVLANReports)
		}

		api.GET("/sessions", reportHandler.GetSessions)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", dashboardHandler.GetDashboardStats)
			dashboard.GET("/health", dashboardHandler.GetSystemHealth)
		}
	}

	return r
}
