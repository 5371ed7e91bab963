package models

import "time"

// Device 设备注册表模型
// 记录局域网设备的MAC/IP映射及其所属VLAN，由DHCP租约同步维护
type Device struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	MACAddress string    `gorm:"uniqueIndex;size:17;not null" json:"mac_address"` // 统一小写形式
	IPAddress  string    `gorm:"index;size:45" json:"ip_address"`
	Name       string    `gorm:"size:64" json:"name"`
	VlanID     *int      `gorm:"index" json:"vlan_id"`
	LastSeen   time.Time `json:"last_seen"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Device) TableName() string {
	return "devices"
}
