package model

import (
	"slices"
	"time"
)

// VersionStatus 版本审核流水线状态.
type VersionStatus string

const (
	VersionStatusUploading     VersionStatus = "uploading"      // 二进制上传中，新版本的初始状态
	VersionStatusProcessing    VersionStatus = "processing"     // 分块/哈希/加密处理中
	VersionStatusScanPending   VersionStatus = "scan_pending"   // 等待自动扫描
	VersionStatusScanFailed    VersionStatus = "scan_failed"    // 自动扫描发现问题
	VersionStatusReviewPending VersionStatus = "review_pending" // 等待人工审核
	VersionStatusApproved      VersionStatus = "approved"       // 已批准，可分发
	VersionStatusRejected      VersionStatus = "rejected"       // 审核驳回
	VersionStatusYanked        VersionStatus = "yanked"         // 批准后撤回，终态
)

// versionTransitions 审核流水线的邻接表，表外的任何迁移（包括自迁移）均非法.
var versionTransitions = map[VersionStatus][]VersionStatus{
	VersionStatusUploading:     {VersionStatusProcessing},
	VersionStatusProcessing:    {VersionStatusScanPending},
	VersionStatusScanPending:   {VersionStatusScanFailed, VersionStatusReviewPending},
	VersionStatusScanFailed:    {VersionStatusScanPending}, // 重新扫描
	VersionStatusReviewPending: {VersionStatusApproved, VersionStatusRejected},
	VersionStatusRejected:      {VersionStatusUploading}, // 重新提交
	VersionStatusApproved:      {VersionStatusYanked},
	VersionStatusYanked:        {},
}

// CanTransition 判断状态迁移是否在邻接表内.
func CanTransition(from, to VersionStatus) bool {
	return slices.Contains(versionTransitions[from], to)
}

// AllowedTransitions 返回某状态的合法后继集合（副本）.
func AllowedTransitions(from VersionStatus) []VersionStatus {
	return slices.Clone(versionTransitions[from])
}

// ParseVersionStatus 解析版本状态.
func ParseVersionStatus(s string) (VersionStatus, bool) {
	if _, ok := versionTransitions[VersionStatus(s)]; ok {
		return VersionStatus(s), true
	}

	return "", false
}

// ProductVersion 产品的一个具体版本，持有各平台的二进制构建.
// (ProductID, VersionString) 组合唯一.
type ProductVersion struct {
	ID        string `gorm:"primaryKey;size:36"                          json:"id"`
	ProductID string `gorm:"size:36;index:idx_product_version,unique"    json:"product_id"`
	// 语义化版本号，如 1.2.3 / 1.0.0-beta.1
	VersionString string         `gorm:"size:40;index:idx_product_version,unique" json:"version_string"`
	Channel       ReleaseChannel `gorm:"size:16;index"                            json:"channel"`
	Changelog     string         `gorm:"type:text"                                json:"changelog,omitempty"`
	ReleaseNotes  string         `gorm:"type:text"                                json:"release_notes,omitempty"`
	Source        VersionSource  `gorm:"size:16"                                  json:"source"`
	CIJobID       string         `gorm:"size:128"                                 json:"ci_job_id,omitempty"`
	Status        VersionStatus  `gorm:"size:32;index"                            json:"status"`
	// 强制更新：用户必须升级到该版本后才能启动
	IsForcedUpdate bool `json:"is_forced_update"`
	// 灰度放量百分比，0-100，写入时钳位；当前不在清单可见性上生效
	RolloutPercentage      int        `json:"rollout_percentage"`
	MinimumLauncherVersion string     `gorm:"size:40" json:"minimum_launcher_version,omitempty"`
	UploadedAt             time.Time  `json:"uploaded_at"`
	ApprovedAt             *time.Time `json:"approved_at,omitempty"`
	YankedAt               *time.Time `json:"yanked_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// ClampRollout 把放量百分比钳位到 [0,100]，不信任调用方.
func ClampRollout(pct int) int {
	if pct < 0 {
		return 0
	}

	if pct > 100 {
		return 100
	}

	return pct
}
