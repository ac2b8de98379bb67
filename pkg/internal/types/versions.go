package types

import (
	"time"

	"github.com/allservices/registry/pkg/internal/model"
)

// CreateVersionRequest 创建版本请求，新版本总是以 uploading 状态进入流水线.
type CreateVersionRequest struct {
	VersionString          string               `binding:"required" json:"version_string" rule:"max=40,semver"`
	Channel                model.ReleaseChannel `json:"channel,omitempty"`
	Changelog              string               `json:"changelog,omitempty"     rule:"max=50000"`
	ReleaseNotes           string               `json:"release_notes,omitempty" rule:"max=50000"`
	Source                 model.VersionSource  `json:"source,omitempty"`
	CIJobID                string               `json:"ci_job_id,omitempty"`
	IsForcedUpdate         bool                 `json:"is_forced_update,omitempty"`
	RolloutPercentage      *int                 `json:"rollout_percentage,omitempty"`
	MinimumLauncherVersion string               `json:"minimum_launcher_version,omitempty" rule:"max=40"`
}

// TransitionStatusRequest 状态迁移请求.
type TransitionStatusRequest struct {
	Status string `binding:"required" json:"status"`
}

// ListVersionsQuery 版本列表过滤参数.
type ListVersionsQuery struct {
	Status   string `form:"status"`
	Channel  string `form:"channel"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PlatformBinaryInfo 版本下某个平台二进制的摘要.
type PlatformBinaryInfo struct {
	ID         string             `json:"id"`
	Platform   model.Platform     `json:"platform"`
	Arch       model.Architecture `json:"arch"`
	SizeBytes  int64              `json:"size_bytes"`
	ManifestID string             `json:"manifest_id"`
}

// VersionDetail 版本详情.
type VersionDetail struct {
	ID                     string               `json:"id"`
	ProductID              string               `json:"product_id"`
	VersionString          string               `json:"version_string"`
	Channel                model.ReleaseChannel `json:"channel"`
	Changelog              string               `json:"changelog,omitempty"`
	ReleaseNotes           string               `json:"release_notes,omitempty"`
	Source                 model.VersionSource  `json:"source"`
	CIJobID                string               `json:"ci_job_id,omitempty"`
	Status                 model.VersionStatus  `json:"status"`
	IsForcedUpdate         bool                 `json:"is_forced_update"`
	RolloutPercentage      int                  `json:"rollout_percentage"`
	MinimumLauncherVersion string               `json:"minimum_launcher_version,omitempty"`
	UploadedAt             time.Time            `json:"uploaded_at"`
	ApprovedAt             *time.Time           `json:"approved_at,omitempty"`
	YankedAt               *time.Time           `json:"yanked_at,omitempty"`
	PlatformBinaries       []PlatformBinaryInfo `json:"platform_binaries"`
}

// VersionSummary 版本摘要，用于版本列表.
type VersionSummary struct {
	ID                string               `json:"id"`
	ProductID         string               `json:"product_id"`
	VersionString     string               `json:"version_string"`
	Channel           model.ReleaseChannel `json:"channel"`
	Source            model.VersionSource  `json:"source"`
	Status            model.VersionStatus  `json:"status"`
	RolloutPercentage int                  `json:"rollout_percentage"`
	UploadedAt        time.Time            `json:"uploaded_at"`
	ApprovedAt        *time.Time           `json:"approved_at,omitempty"`
	YankedAt          *time.Time           `json:"yanked_at,omitempty"`
}
