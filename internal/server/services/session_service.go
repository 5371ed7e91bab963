package services

import (
	"strings"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/database"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"

	"gorm.io/gorm"
)

// SessionService 会话读取服务
// 对会话库执行区间查询并联表补齐主机名/设备/VLAN元数据，
// 输出已通过分类器白名单过滤的归一化会话记录
type SessionService struct {
	db         *gorm.DB
	classifier *Classifier
}

// NewSessionService 创建会话读取服务
func NewSessionService() *SessionService {
	return &SessionService{
		db:         database.DB,
		classifier: DefaultClassifier(),
	}
}

// NewSessionServiceWith 创建会话读取服务（指定数据库和分类器）
func NewSessionServiceWith(db *gorm.DB, classifier *Classifier) *SessionService {
	return &SessionService{
		db:         db,
		classifier: classifier,
	}
}

// sessionRow 联表查询的扫描结构，可空列使用指针接收
type sessionRow struct {
	SessionID     string
	Timestamp     time.Time
	SrcIP         string
	DstIP         string
	SrcPort       uint16
	DstPort       uint16
	Protocol      string
	BytesSent     *uint64
	BytesReceived *uint64
	Duration      *float64
	Hostname      *string
	VlanID        *int
	DeviceMAC     *string
	DeviceName    *string
	VlanName      *string
}

// ReadSessions 读取时间区间内的会话记录
// start >= end 时返回空结果而非错误，时间边界由调用方控制；
// vlanID为nil、deviceMAC为空串表示不过滤；
// 结果按时间戳降序排列（仅用于展示，聚合不依赖顺序）
func (ss *SessionService) ReadSessions(start, end time.Time, vlanID *int, deviceMAC string) ([]models.SessionRecord, error) {
	if !start.Before(end) {
		return []models.SessionRecord{}, nil
	}

	query := ss.db.Table("sessions").
		Select(`sessions.session_id, sessions.timestamp,
			sessions.src_ip, sessions.dst_ip, sessions.src_port, sessions.dst_port,
			sessions.protocol, sessions.bytes_sent, sessions.bytes_received, sessions.duration,
			dns_records.hostname AS hostname,
			devices.mac_address AS device_mac, devices.name AS device_name, devices.vlan_id AS vlan_id,
			vlans.name AS vlan_name`).
		Joins("LEFT JOIN dns_records ON dns_records.ip_address = sessions.dst_ip").
		Joins("LEFT JOIN devices ON devices.ip_address = sessions.src_ip").
		Joins("LEFT JOIN vlans ON vlans.vlan_id = devices.vlan_id").
		Where("sessions.timestamp >= ? AND sessions.timestamp < ?", start, end).
		Order("sessions.timestamp DESC")

	if vlanID != nil {
		query = query.Where("devices.vlan_id = ?", *vlanID)
	}
	if deviceMAC != "" {
		query = query.Where("devices.mac_address = ?", strings.ToLower(deviceMAC))
	}

	var rows []sessionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, &DataSourceError{Op: "read_sessions", Err: err}
	}

	records := make([]models.SessionRecord, 0, len(rows))
	for _, row := range rows {
		hostname := ""
		if row.Hostname != nil {
			hostname = *row.Hostname
		}

		// 白名单主机的会话在进入任何下游统计之前整体剔除
		if hostname != "" && ss.classifier.IsWhitelisted(hostname) {
			continue
		}

		record := models.SessionRecord{
			SessionID: row.SessionID,
			Timestamp: row.Timestamp,
			SrcIP:     row.SrcIP,
			DstIP:     row.DstIP,
			SrcPort:   row.SrcPort,
			DstPort:   row.DstPort,
			Protocol:  row.Protocol,
			Hostname:  hostname,
			VlanID:    row.VlanID,
		}

		// NULL数值统一归零
		if row.BytesSent != nil {
			record.BytesSent = *row.BytesSent
		}
		if row.BytesReceived != nil {
			record.BytesReceived = *row.BytesReceived
		}
		if row.Duration != nil {
			record.DurationSeconds = *row.Duration
		}

		if row.DeviceMAC != nil {
			record.DeviceMAC = strings.ToLower(*row.DeviceMAC)
		}
		if row.DeviceName != nil {
			record.DeviceName = *row.DeviceName
		}
		if row.VlanName != nil {
			record.VlanName = *row.VlanName
		}

		records = append(records, record)
	}

	return records, nil
}

// CountSessions 统计时间区间内的会话总数（含白名单会话，用于运维检查）
func (ss *SessionService) CountSessions(start, end time.Time) (int64, error) {
	var count int64
	err := ss.db.Model(&models.Session{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, &DataSourceError{Op: "count_sessions", Err: err}
	}
	return count, nil
}
