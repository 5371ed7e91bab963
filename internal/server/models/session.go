package models

import "time"

// Session 会话流水表模型
// 由上游DHCP/DNS/防火墙采集栈写入，报表引擎只作为只读数据源使用
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID string    `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	SrcIP     string    `gorm:"size:45;index" json:"src_ip"`
	DstIP     string    `gorm:"size:45;index" json:"dst_ip"`
	SrcPort   uint16    `json:"src_port"`
	DstPort   uint16    `json:"dst_port"`
	Protocol  string    `gorm:"size:16" json:"protocol"`

	// 字节数和持续时间允许为NULL，读取时统一归零
	BytesSent     *uint64  `gorm:"column:bytes_sent" json:"bytes_sent"`
	BytesReceived *uint64  `gorm:"column:bytes_received" json:"bytes_received"`
	Duration      *float64 `gorm:"column:duration" json:"duration"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "sessions"
}

// SessionRecord 归一化后的会话记录
// 会话读取器的输出形态：数值已归零、主机名/设备/VLAN元数据已联表补齐，
// 白名单主机的会话在此之前已被整体剔除
type SessionRecord struct {
	SessionID       string    `json:"session_id"`
	Timestamp       time.Time `json:"timestamp"`
	SrcIP           string    `json:"src_ip"`
	DstIP           string    `json:"dst_ip"`
	SrcPort         uint16    `json:"src_port"`
	DstPort         uint16    `json:"dst_port"`
	Protocol        string    `json:"protocol"`
	BytesSent       uint64    `json:"bytes_sent"`
	BytesReceived   uint64    `json:"bytes_received"`
	DurationSeconds float64   `json:"duration_seconds"`
	Hostname        string    `json:"hostname,omitempty"`
	VlanID          *int      `json:"vlan_id,omitempty"`
	DeviceMAC       string    `json:"device_mac,omitempty"`
	DeviceName      string    `json:"device_name,omitempty"`

	// VLAN名称仅供报表生成内部使用，不参与序列化
	VlanName string `json:"-"`
}

// TotalBytes 会话总流量（发送+接收）
func (r *SessionRecord) TotalBytes() uint64 {
	return r.BytesSent + r.BytesReceived
}
