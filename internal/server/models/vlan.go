package models

import "time"

// VLAN VLAN注册表模型
type VLAN struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	VlanID      int       `gorm:"uniqueIndex;not null" json:"vlan_id"`
	Name        string    `gorm:"size:64" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Subnet      string    `gorm:"size:45" json:"subnet"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (VLAN) TableName() string {
	return "vlans"
}

// GetDefaultVLANs 获取默认VLAN模板
// 新数据库初始化时写入，保证注册表可联
func GetDefaultVLANs() []VLAN {
	return []VLAN{
		{VlanID: 1, Name: "Default", Description: "默认网段", Subnet: "192.168.1.0/24"},
		{VlanID: 10, Name: "Users", Description: "用户设备", Subnet: "192.168.10.0/24"},
		{VlanID: 20, Name: "IoT", Description: "物联网设备", Subnet: "192.168.20.0/24"},
		{VlanID: 30, Name: "Guest", Description: "访客网络", Subnet: "192.168.30.0/24"},
	}
}
