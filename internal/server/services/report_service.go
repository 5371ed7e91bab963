package services

import (
	"sort"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"
)

// 环比对比的最大周期，超过该周期的报表不附带环比数据
const maxHistoricalPeriodHours = 24

// ReportService 报表生成服务
// 编排会话读取、用量聚合和设备/VLAN分组，组装综合报表
type ReportService struct {
	sessions *SessionService
	usage    *UsageService
}

// NewReportService 创建报表生成服务
func NewReportService() *ReportService {
	return &ReportService{
		sessions: NewSessionService(),
		usage:    NewUsageService(),
	}
}

// NewReportServiceWith 创建报表生成服务（指定依赖服务）
func NewReportServiceWith(sessions *SessionService, usage *UsageService) *ReportService {
	return &ReportService{
		sessions: sessions,
		usage:    usage,
	}
}

// BuildReport 构建综合报表
// 时间窗为 [now-periodHours, now)；includeHistorical为真且周期不超过24小时时，
// 额外查询上一等长相邻窗口并计算环比变化
func (rs *ReportService) BuildReport(periodHours int, includeHistorical bool) (*models.ComprehensiveReport, error) {
	end := time.Now()
	start := end.Add(-time.Duration(periodHours) * time.Hour)

	sessions, err := rs.sessions.ReadSessions(start, end, nil, "")
	if err != nil {
		return nil, err
	}

	report := &models.ComprehensiveReport{
		Metadata: models.ReportMetadata{
			GeneratedAt:           time.Now(),
			PeriodStart:           start,
			PeriodEnd:             end,
			PeriodHours:           periodHours,
			TotalSessionsAnalyzed: len(sessions),
		},
		OverallStats:  rs.usage.Aggregate(sessions),
		DeviceReports: rs.deviceReportsFrom(sessions),
		VLANReports:   rs.vlanReportsFrom(sessions),
	}

	if includeHistorical && periodHours <= maxHistoricalPeriodHours {
		prevStart := start.Add(-time.Duration(periodHours) * time.Hour)
		prevSessions, err := rs.sessions.ReadSessions(prevStart, start, nil, "")
		if err != nil {
			return nil, err
		}

		prevStats := rs.usage.Aggregate(prevSessions)
		report.HistoricalComparison = &models.HistoricalComparison{
			PreviousStats:          prevStats,
			BandwidthChangePercent: changePercent(float64(prevStats.TotalBytes), float64(report.OverallStats.TotalBytes)),
			SessionChangePercent:   changePercent(float64(prevStats.TotalSessions), float64(report.OverallStats.TotalSessions)),
		}
	}

	return report, nil
}

// DeviceReports 生成时间区间内的设备报表，按总带宽降序
func (rs *ReportService) DeviceReports(start, end time.Time) ([]models.DeviceReport, error) {
	sessions, err := rs.sessions.ReadSessions(start, end, nil, "")
	if err != nil {
		return nil, err
	}
	return rs.deviceReportsFrom(sessions), nil
}

// VLANReports 生成时间区间内的VLAN报表，按总带宽降序
func (rs *ReportService) VLANReports(start, end time.Time) ([]models.VLANReport, error) {
	sessions, err := rs.sessions.ReadSessions(start, end, nil, "")
	if err != nil {
		return nil, err
	}
	return rs.vlanReportsFrom(sessions), nil
}

// deviceReportsFrom 按设备MAC分组生成设备报表
// 没有设备MAC的会话无法归属，不出现在任何设备条目中；
// 空分组不产生条目（没有零值行）
func (rs *ReportService) deviceReportsFrom(sessions []models.SessionRecord) []models.DeviceReport {
	groups := make(map[string][]models.SessionRecord)
	for i := range sessions {
		mac := sessions[i].DeviceMAC
		if mac == "" {
			continue
		}
		groups[mac] = append(groups[mac], sessions[i])
	}

	reports := make([]models.DeviceReport, 0, len(groups))
	for mac, group := range groups {
		report := models.DeviceReport{
			DeviceMAC:    mac,
			DeviceName:   group[0].DeviceName,
			VlanID:       group[0].VlanID,
			SessionCount: len(group),
			FirstSeen:    group[0].Timestamp,
			LastSeen:     group[0].Timestamp,
			TopApps:      RankApplications(rs.usage.CategoryBytes(group), topDeviceAppsLimit),
		}

		for i := range group {
			report.TotalBandwidth += group[i].TotalBytes()
			if group[i].Timestamp.Before(report.FirstSeen) {
				report.FirstSeen = group[i].Timestamp
			}
			if group[i].Timestamp.After(report.LastSeen) {
				report.LastSeen = group[i].Timestamp
			}
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].TotalBandwidth != reports[j].TotalBandwidth {
			return reports[i].TotalBandwidth > reports[j].TotalBandwidth
		}
		return reports[i].DeviceMAC < reports[j].DeviceMAC
	})

	return reports
}

// vlanReportsFrom 按VLAN分组生成VLAN报表
func (rs *ReportService) vlanReportsFrom(sessions []models.SessionRecord) []models.VLANReport {
	groups := make(map[int][]models.SessionRecord)
	for i := range sessions {
		if sessions[i].VlanID == nil {
			continue
		}
		vlanID := *sessions[i].VlanID
		groups[vlanID] = append(groups[vlanID], sessions[i])
	}

	reports := make([]models.VLANReport, 0, len(groups))
	for vlanID, group := range groups {
		deviceBytes := make(map[string]uint64)
		for i := range group {
			if group[i].DeviceMAC != "" {
				deviceBytes[group[i].DeviceMAC] += group[i].TotalBytes()
			}
		}

		report := models.VLANReport{
			VlanID:          vlanID,
			VlanName:        group[0].VlanName,
			DeviceCount:     len(deviceBytes),
			SessionCount:    len(group),
			TopDevices:      rankDevices(deviceBytes, topDevicesLimit),
			TopApplications: RankApplications(rs.usage.CategoryBytes(group), topApplicationsLimit),
		}

		for i := range group {
			report.TotalBandwidth += group[i].TotalBytes()
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].TotalBandwidth != reports[j].TotalBandwidth {
			return reports[i].TotalBandwidth > reports[j].TotalBandwidth
		}
		return reports[i].VlanID < reports[j].VlanID
	})

	return reports
}

// rankDevices 设备带宽排名
// 字节数降序，相同字节数按MAC字典序升序，截断到limit条
func rankDevices(deviceBytes map[string]uint64, limit int) []models.DeviceBandwidth {
	ranked := make([]models.DeviceBandwidth, 0, len(deviceBytes))
	for mac, bytes := range deviceBytes {
		ranked = append(ranked, models.DeviceBandwidth{DeviceMAC: mac, Bytes: bytes})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bytes != ranked[j].Bytes {
			return ranked[i].Bytes > ranked[j].Bytes
		}
		return ranked[i].DeviceMAC < ranked[j].DeviceMAC
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// changePercent 环比变化百分比
// 基数为0时：新值大于0记为100%，否则记为0%
func changePercent(old, new float64) float64 {
	if old == 0 {
		if new > 0 {
			return 100.0
		}
		return 0.0
	}
	return (new - old) / old * 100.0
}
