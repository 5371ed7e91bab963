package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/database"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"

	"github.com/robfig/cron/v3"
)

// ReportScheduler 报表定时调度器
// 定时重建默认报表缓存在内存中供仪表盘使用（报表本身不落库），
// 并按保留期清理过期会话记录
type ReportScheduler struct {
	cron          *cron.Cron
	reportService *ReportService

	refreshSpec   string
	retentionSpec string
	periodHours   int
	historical    bool
	retentionDays int

	mu            sync.RWMutex
	latest        *models.ComprehensiveReport
	lastRefreshed time.Time
	refreshCount  uint64
}

// NewReportScheduler 创建报表定时调度器
func NewReportScheduler(reportService *ReportService, refreshSpec, retentionSpec string, periodHours int, historical bool, retentionDays int) *ReportScheduler {
	// 创建cron实例，支持秒级精度
	c := cron.New(cron.WithSeconds())

	return &ReportScheduler{
		cron:          c,
		reportService: reportService,
		refreshSpec:   refreshSpec,
		retentionSpec: retentionSpec,
		periodHours:   periodHours,
		historical:    historical,
		retentionDays: retentionDays,
	}
}

// Start 启动定时任务调度器
func (rs *ReportScheduler) Start() error {
	fmt.Println("🚀 [定时调度器] 正在启动定时任务...")

	// 1. 定时刷新报表缓存
	_, err := rs.cron.AddFunc(rs.refreshSpec, func() {
		fmt.Printf("🔄 [报表刷新] 开始刷新报表缓存 - %s\n", time.Now().Format("15:04:05"))
		if err := rs.RefreshReport(); err != nil {
			fmt.Printf("❌ [报表刷新] 报表刷新失败: %v\n", err)
		} else {
			fmt.Printf("✅ [报表刷新] 报表刷新完成 - %s\n", time.Now().Format("15:04:05"))
		}
	})
	if err != nil {
		return fmt.Errorf("添加报表刷新任务失败: %w", err)
	}

	// 2. 定时清理过期会话记录
	_, err = rs.cron.AddFunc(rs.retentionSpec, func() {
		fmt.Printf("🧹 [数据维护] 开始清理过期会话 - %s\n", time.Now().Format("15:04:05"))
		if err := rs.purgeExpiredSessions(); err != nil {
			fmt.Printf("❌ [数据维护] 清理过期会话失败: %v\n", err)
		} else {
			fmt.Printf("✅ [数据维护] 过期会话清理完成 - %s\n", time.Now().Format("15:04:05"))
		}
	})
	if err != nil {
		return fmt.Errorf("添加数据维护任务失败: %w", err)
	}

	rs.cron.Start()
	fmt.Println("✅ [定时调度器] 定时任务调度器已启动")
	fmt.Println("📋 [定时调度器] 任务列表:")
	fmt.Printf("   • 报表缓存刷新: %s\n", rs.refreshSpec)
	fmt.Printf("   • 过期会话清理: %s (保留%d天)\n", rs.retentionSpec, rs.retentionDays)

	return nil
}

// Stop 停止定时任务调度器
func (rs *ReportScheduler) Stop() {
	fmt.Println("🛑 [定时调度器] 正在停止定时任务...")
	rs.cron.Stop()
	fmt.Println("✅ [定时调度器] 定时任务调度器已停止")
}

// RefreshReport 立即重建默认报表并更新缓存
func (rs *ReportScheduler) RefreshReport() error {
	report, err := rs.reportService.BuildReport(rs.periodHours, rs.historical)
	if err != nil {
		return fmt.Errorf("构建报表失败: %w", err)
	}

	rs.mu.Lock()
	rs.latest = report
	rs.lastRefreshed = time.Now()
	rs.refreshCount++
	rs.mu.Unlock()

	return nil
}

// Latest 获取最近一次缓存的报表，尚未生成时返回nil
func (rs *ReportScheduler) Latest() *models.ComprehensiveReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.latest
}

// LastRefreshed 获取最近一次刷新时间
func (rs *ReportScheduler) LastRefreshed() time.Time {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastRefreshed
}

// RefreshCount 获取累计刷新次数
func (rs *ReportScheduler) RefreshCount() uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.refreshCount
}

// purgeExpiredSessions 清理保留期之外的会话记录
func (rs *ReportScheduler) purgeExpiredSessions() error {
	cutoff := time.Now().AddDate(0, 0, -rs.retentionDays)

	result := database.DB.Where("timestamp < ?", cutoff).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("删除过期会话失败: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		fmt.Printf("🧹 [数据维护] 已删除 %d 条过期会话\n", result.RowsAffected)
	}

	return nil
}

// GetRunningJobs 获取正在运行的任务列表
func (rs *ReportScheduler) GetRunningJobs() []cron.Entry {
	return rs.cron.Entries()
}
