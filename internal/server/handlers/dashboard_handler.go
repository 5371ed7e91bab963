package handlers

import (
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboardStats 获取仪表盘统计数据
func (dh *DashboardHandler) GetDashboardStats(c *gin.Context) {
	stats, err := dh.dashboardService.GetDashboardStats()
	if err != nil {
		response.InternalError(c, "获取仪表盘数据失败: "+err.Error())
		return
	}

	response.Success(c, stats)
}

// GetSystemHealth 获取系统健康状态
func (dh *DashboardHandler) GetSystemHealth(c *gin.Context) {
	health, err := dh.dashboardService.GetSystemHealth()
	if err != nil {
		response.InternalError(c, "获取系统健康状态失败: "+err.Error())
		return
	}

	response.Success(c, health)
}
