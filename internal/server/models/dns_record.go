package models

import "time"

// DNSRecord DNS解析记录模型
// 保存目的IP在会话时刻的解析主机名，由上游DNS采集器写入
type DNSRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	IPAddress string    `gorm:"uniqueIndex;size:45;not null" json:"ip_address"`
	Hostname  string    `gorm:"index;size:255" json:"hostname"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (DNSRecord) TableName() string {
	return "dns_records"
}
