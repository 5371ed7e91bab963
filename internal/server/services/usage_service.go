package services

import (
	"sort"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"
)

// 排名截断长度
const (
	topApplicationsLimit = 10
	topDeviceAppsLimit   = 5
	topDevicesLimit      = 5
)

// UsageService 用量聚合服务
// 对会话记录集合做纯函数聚合：总量、均值、峰值小时、应用排名。
// 聚合与输入顺序无关（多重集上的求和与argmax）
type UsageService struct {
	classifier *Classifier
}

// NewUsageService 创建用量聚合服务
func NewUsageService() *UsageService {
	return &UsageService{classifier: DefaultClassifier()}
}

// NewUsageServiceWith 创建用量聚合服务（指定分类器）
func NewUsageServiceWith(classifier *Classifier) *UsageService {
	return &UsageService{classifier: classifier}
}

// Aggregate 聚合会话记录为用量统计
// 空输入返回零值统计（空排名列表），不是错误
func (us *UsageService) Aggregate(sessions []models.SessionRecord) models.UsageStats {
	stats := models.UsageStats{
		TopApplications: []models.ApplicationUsage{},
	}

	if len(sessions) == 0 {
		return stats
	}

	var totalDuration float64
	categoryBytes := make(map[string]uint64)
	hourBytes := make(map[int]uint64)

	for i := range sessions {
		s := &sessions[i]

		stats.BytesSent += s.BytesSent
		stats.BytesReceived += s.BytesReceived
		totalDuration += s.DurationSeconds

		// 白名单会话在读取阶段已剔除，这里只会出现正常分类、Unknown和Other
		category := us.classifier.Classify(s.Hostname)
		categoryBytes[category] += s.TotalBytes()

		hourBytes[s.Timestamp.Hour()] += s.TotalBytes()
	}

	stats.TotalSessions = len(sessions)
	stats.TotalBytes = stats.BytesSent + stats.BytesReceived
	stats.AvgSessionDuration = totalDuration / float64(len(sessions))
	stats.TopApplications = RankApplications(categoryBytes, topApplicationsLimit)
	stats.PeakUsageHour = peakHour(hourBytes)

	return stats
}

// CategoryBytes 按分类累计会话字节数
func (us *UsageService) CategoryBytes(sessions []models.SessionRecord) map[string]uint64 {
	categoryBytes := make(map[string]uint64)
	for i := range sessions {
		category := us.classifier.Classify(sessions[i].Hostname)
		categoryBytes[category] += sessions[i].TotalBytes()
	}
	return categoryBytes
}

// RankApplications 应用排名
// 字节数降序，相同字节数按名称字典序升序，截断到limit条
func RankApplications(categoryBytes map[string]uint64, limit int) []models.ApplicationUsage {
	ranked := make([]models.ApplicationUsage, 0, len(categoryBytes))
	for name, bytes := range categoryBytes {
		ranked = append(ranked, models.ApplicationUsage{Name: name, Bytes: bytes})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bytes != ranked[j].Bytes {
			return ranked[i].Bytes > ranked[j].Bytes
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// peakHour 峰值小时检测
// 各小时桶流量最大者胜出，相同流量取较小小时数；无数据返回0
func peakHour(hourBytes map[int]uint64) int {
	peak := 0
	var peakBytes uint64
	for hour := 0; hour < 24; hour++ {
		if bytes, ok := hourBytes[hour]; ok && bytes > peakBytes {
			peak = hour
			peakBytes = bytes
		}
	}
	return peak
}
