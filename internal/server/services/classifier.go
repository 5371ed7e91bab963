package services

import (
	"strings"
	"sync"
)

// 分类结果常量
const (
	// CategoryUnknown 无主机名时的分类结果
	CategoryUnknown = "Unknown"

	// CategoryOther 未命中任何规则时的分类结果
	CategoryOther = "Other"

	// CategoryExcluded 白名单哨兵值，不是应用分类
	// 命中白名单的会话在进入聚合前被整体剔除
	CategoryExcluded = "__excluded__"
)

// CategoryRule 应用分类规则
// Domains内按声明顺序做域名后缀匹配，先命中者生效
type CategoryRule struct {
	Name    string
	Domains []string
}

// Taxonomy 分类规则表
// 进程级只读状态，初始化一次后不再变更，可被并发读取
type Taxonomy struct {
	Whitelist  []string
	Categories []CategoryRule
}

// Classifier 主机名流量分类器
type Classifier struct {
	taxonomy *Taxonomy
}

var (
	defaultClassifier     *Classifier
	defaultClassifierOnce sync.Once
)

// DefaultTaxonomy 获取默认分类规则表
// 白名单覆盖操作系统更新和遥测流量，分类覆盖常见家庭/小型办公应用
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Whitelist: []string{
			"windowsupdate.microsoft.com",
			"update.microsoft.com",
			"windowsupdate.com",
			"telemetry.microsoft.com",
			"vortex.data.microsoft.com",
			"swcdn.apple.com",
			"swscan.apple.com",
			"updates.cdn-apple.com",
			"archive.ubuntu.com",
			"security.ubuntu.com",
		},
		Categories: []CategoryRule{
			{Name: "YouTube", Domains: []string{"youtube.com", "youtu.be", "ytimg.com", "googlevideo.com"}},
			{Name: "Netflix", Domains: []string{"netflix.com", "nflxvideo.net", "nflximg.net"}},
			{Name: "Streaming", Domains: []string{"hulu.com", "twitch.tv", "disneyplus.com", "hbomax.com", "spotify.com", "scdn.co"}},
			{Name: "Social Media", Domains: []string{"facebook.com", "fbcdn.net", "instagram.com", "twitter.com", "x.com", "tiktok.com", "tiktokcdn.com", "reddit.com"}},
			{Name: "Gaming", Domains: []string{"steampowered.com", "steamcontent.com", "epicgames.com", "playstation.net", "xboxlive.com", "riotgames.com", "nintendo.net"}},
			{Name: "Video Conferencing", Domains: []string{"zoom.us", "teams.microsoft.com", "webex.com", "meet.google.com"}},
			{Name: "Cloud Storage", Domains: []string{"dropbox.com", "drive.google.com", "onedrive.live.com", "icloud.com"}},
			{Name: "Shopping", Domains: []string{"amazon.com", "ebay.com", "aliexpress.com", "taobao.com"}},
			{Name: "Email", Domains: []string{"gmail.com", "mail.google.com", "outlook.com", "mail.yahoo.com"}},
			{Name: "Web Browsing", Domains: []string{"google.com", "bing.com", "wikipedia.org", "duckduckgo.com"}},
		},
	}
}

// NewClassifier 创建流量分类器
func NewClassifier(taxonomy *Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// DefaultClassifier 获取默认分类器单例
func DefaultClassifier() *Classifier {
	defaultClassifierOnce.Do(func() {
		defaultClassifier = NewClassifier(DefaultTaxonomy())
	})
	return defaultClassifier
}

// Classify 根据主机名分类
// 空主机名返回Unknown；白名单命中返回CategoryExcluded哨兵；
// 之后按分类声明顺序匹配，首个命中规则生效；都不命中返回Other
func (c *Classifier) Classify(hostname string) string {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return CategoryUnknown
	}

	// 白名单优先，无条件先检查
	for _, domain := range c.taxonomy.Whitelist {
		if matchesDomain(hostname, domain) {
			return CategoryExcluded
		}
	}

	for _, category := range c.taxonomy.Categories {
		for _, domain := range category.Domains {
			if matchesDomain(hostname, domain) {
				return category.Name
			}
		}
	}

	return CategoryOther
}

// IsWhitelisted 判断主机名是否在白名单内
func (c *Classifier) IsWhitelisted(hostname string) bool {
	return c.Classify(hostname) == CategoryExcluded
}

// matchesDomain 域名后缀匹配
// 主机名等于规则域名，或以 "."+域名 结尾视为命中
func matchesDomain(hostname, domain string) bool {
	return hostname == domain || strings.HasSuffix(hostname, "."+domain)
}
