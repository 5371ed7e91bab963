package services

import (
	"fmt"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/database"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/utils"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"gorm.io/gorm"
)

// DashboardService 仪表盘服务
// 汇总会话库规模、缓存报表状态和主机资源占用
type DashboardService struct {
	db        *gorm.DB
	scheduler *ReportScheduler
	startTime time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(scheduler *ReportScheduler) *DashboardService {
	return &DashboardService{
		db:        database.DB,
		scheduler: scheduler,
		startTime: time.Now(),
	}
}

// DashboardStats 仪表盘统计数据
type DashboardStats struct {
	StoreStats  StoreStatsInfo  `json:"store_stats"`
	ReportStats ReportStatsInfo `json:"report_stats"`
	Uptime      string          `json:"uptime"`
}

// StoreStatsInfo 会话库统计信息
type StoreStatsInfo struct {
	TotalSessions int64      `json:"total_sessions"`
	DeviceCount   int64      `json:"device_count"`
	VLANCount     int64      `json:"vlan_count"`
	OldestSession *time.Time `json:"oldest_session,omitempty"`
	NewestSession *time.Time `json:"newest_session,omitempty"`
}

// ReportStatsInfo 报表缓存状态信息
type ReportStatsInfo struct {
	HasCachedReport bool      `json:"has_cached_report"`
	LastRefreshed   time.Time `json:"last_refreshed"`
	LastRefreshedAt string    `json:"last_refreshed_at"`
	RefreshCount    uint64    `json:"refresh_count"`
	TotalBandwidth  string    `json:"total_bandwidth"`
	SessionsInScope int       `json:"sessions_in_scope"`
}

// GetDashboardStats 获取仪表盘统计数据
func (ds *DashboardService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		Uptime: time.Since(ds.startTime).Round(time.Minute).String(),
	}

	// 会话库规模统计
	storeStats, err := ds.getStoreStats()
	if err != nil {
		return nil, fmt.Errorf("获取会话库统计失败: %w", err)
	}
	stats.StoreStats = *storeStats

	// 报表缓存状态
	stats.ReportStats = ds.getReportStats()

	return stats, nil
}

// getStoreStats 获取会话库规模统计
func (ds *DashboardService) getStoreStats() (*StoreStatsInfo, error) {
	stats := &StoreStatsInfo{}

	if err := ds.db.Model(&models.Session{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, fmt.Errorf("统计会话数量失败: %w", err)
	}
	if err := ds.db.Model(&models.Device{}).Count(&stats.DeviceCount).Error; err != nil {
		return nil, fmt.Errorf("统计设备数量失败: %w", err)
	}
	if err := ds.db.Model(&models.VLAN{}).Count(&stats.VLANCount).Error; err != nil {
		return nil, fmt.Errorf("统计VLAN数量失败: %w", err)
	}

	if stats.TotalSessions > 0 {
		var oldest, newest models.Session
		if err := ds.db.Order("timestamp ASC").First(&oldest).Error; err == nil {
			stats.OldestSession = &oldest.Timestamp
		}
		if err := ds.db.Order("timestamp DESC").First(&newest).Error; err == nil {
			stats.NewestSession = &newest.Timestamp
		}
	}

	return stats, nil
}

// getReportStats 获取报表缓存状态
func (ds *DashboardService) getReportStats() ReportStatsInfo {
	info := ReportStatsInfo{
		RefreshCount: ds.scheduler.RefreshCount(),
	}

	latest := ds.scheduler.Latest()
	if latest == nil {
		return info
	}

	info.HasCachedReport = true
	info.LastRefreshed = ds.scheduler.LastRefreshed()
	info.LastRefreshedAt = utils.TimeAgo(info.LastRefreshed)
	info.TotalBandwidth = utils.FormatBytes(latest.OverallStats.TotalBytes)
	info.SessionsInScope = latest.Metadata.TotalSessionsAnalyzed

	return info
}

// SystemHealthInfo 系统健康信息
type SystemHealthInfo struct {
	Status    string                 `json:"status"`
	Checks    map[string]HealthCheck `json:"checks"`
	SystemRes *SystemResourceInfo    `json:"system_resources"`
}

// SystemResourceInfo 系统资源信息
type SystemResourceInfo struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
	MemoryTotal uint64  `json:"memory_total"`
	MemoryUsed  uint64  `json:"memory_used"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskUsed    uint64  `json:"disk_used"`
}

// HealthCheck 健康检查项
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// GetSystemHealth 获取系统健康状态
func (ds *DashboardService) GetSystemHealth() (*SystemHealthInfo, error) {
	health := &SystemHealthInfo{
		Status: "healthy",
		Checks: make(map[string]HealthCheck),
	}

	// 检查数据库连接
	if err := ds.db.Exec("SELECT 1").Error; err != nil {
		health.Checks["database"] = HealthCheck{
			Status:  "error",
			Message: "数据库连接失败",
			Error:   err.Error(),
		}
		health.Status = "degraded"
	} else {
		health.Checks["database"] = HealthCheck{
			Status:  "ok",
			Message: "数据库连接正常",
		}
	}

	// 检查报表缓存新鲜度
	cacheStatus := ds.checkReportCache()
	health.Checks["report_cache"] = cacheStatus
	if cacheStatus.Status == "warning" && health.Status == "healthy" {
		health.Status = "warning"
	}

	// 获取系统资源信息
	systemRes, err := ds.getSystemResources()
	if err != nil {
		health.Checks["system_resources"] = HealthCheck{
			Status:  "error",
			Message: "获取系统资源失败",
			Error:   err.Error(),
		}
		if health.Status == "healthy" {
			health.Status = "degraded"
		}
	} else {
		health.SystemRes = systemRes
		health.Checks["system_resources"] = HealthCheck{
			Status:  "ok",
			Message: "系统资源正常",
		}
	}

	return health, nil
}

// checkReportCache 检查报表缓存新鲜度
func (ds *DashboardService) checkReportCache() HealthCheck {
	latest := ds.scheduler.Latest()
	if latest == nil {
		return HealthCheck{
			Status:  "warning",
			Message: "报表缓存尚未生成",
		}
	}

	age := time.Since(ds.scheduler.LastRefreshed())
	if age > time.Hour {
		return HealthCheck{
			Status:  "warning",
			Message: fmt.Sprintf("报表缓存已过时: %s", utils.TimeAgo(ds.scheduler.LastRefreshed())),
		}
	}

	return HealthCheck{
		Status:  "ok",
		Message: fmt.Sprintf("报表缓存正常 (刷新于%s)", utils.TimeAgo(ds.scheduler.LastRefreshed())),
	}
}

// getSystemResources 获取系统资源信息
func (ds *DashboardService) getSystemResources() (*SystemResourceInfo, error) {
	var sysRes SystemResourceInfo

	// 获取CPU使用率
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err != nil {
		return nil, fmt.Errorf("获取CPU使用率失败: %w", err)
	}
	if len(cpuPercent) > 0 {
		sysRes.CPUUsage = cpuPercent[0]
	}

	// 获取内存信息
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("获取内存信息失败: %w", err)
	}
	sysRes.MemoryUsage = memInfo.UsedPercent
	sysRes.MemoryTotal = memInfo.Total
	sysRes.MemoryUsed = memInfo.Used

	// 获取磁盘信息 (根目录)
	diskInfo, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("获取磁盘信息失败: %w", err)
	}
	sysRes.DiskUsage = diskInfo.UsedPercent
	sysRes.DiskTotal = diskInfo.Total
	sysRes.DiskUsed = diskInfo.Used

	return &sysRes, nil
}
