package model

import (
	"testing"
)

// allStatuses 全部流水线状态，用于穷举迁移矩阵.
var allStatuses = []VersionStatus{
	VersionStatusUploading,
	VersionStatusProcessing,
	VersionStatusScanPending,
	VersionStatusScanFailed,
	VersionStatusReviewPending,
	VersionStatusApproved,
	VersionStatusRejected,
	VersionStatusYanked,
}

// TestCanTransitionMatrix 穷举迁移矩阵：只有邻接表内的迁移合法.
func TestCanTransitionMatrix(t *testing.T) {
	allowed := map[VersionStatus]map[VersionStatus]bool{
		VersionStatusUploading:     {VersionStatusProcessing: true},
		VersionStatusProcessing:    {VersionStatusScanPending: true},
		VersionStatusScanPending:   {VersionStatusScanFailed: true, VersionStatusReviewPending: true},
		VersionStatusScanFailed:    {VersionStatusScanPending: true},
		VersionStatusReviewPending: {VersionStatusApproved: true, VersionStatusRejected: true},
		VersionStatusRejected:      {VersionStatusUploading: true},
		VersionStatusApproved:      {VersionStatusYanked: true},
		VersionStatusYanked:        {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from][to]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

// TestCanTransitionSelf 自迁移一律非法.
func TestCanTransitionSelf(t *testing.T) {
	for _, s := range allStatuses {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) should be false", s, s)
		}
	}
}

// TestCanTransitionUnknown 未知状态没有任何合法迁移.
func TestCanTransitionUnknown(t *testing.T) {
	if CanTransition("bogus", VersionStatusProcessing) {
		t.Error("unknown from-status should not transition")
	}

	if CanTransition(VersionStatusUploading, "bogus") {
		t.Error("unknown to-status should not be reachable")
	}
}

func TestParseVersionStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, ok := ParseVersionStatus(string(s))
		if !ok || got != s {
			t.Errorf("ParseVersionStatus(%q) = (%q, %v)", s, got, ok)
		}
	}

	if _, ok := ParseVersionStatus("published"); ok {
		t.Error("ParseVersionStatus should reject unknown status")
	}
}

// TestAllowedTransitionsCopy 返回的切片是副本，调用方修改不应污染邻接表.
func TestAllowedTransitionsCopy(t *testing.T) {
	got := AllowedTransitions(VersionStatusScanPending)
	if len(got) != 2 {
		t.Fatalf("AllowedTransitions(scan_pending) = %v, want 2 entries", got)
	}

	got[0] = VersionStatusYanked

	if CanTransition(VersionStatusScanPending, VersionStatusYanked) {
		t.Error("mutating AllowedTransitions result must not affect the transition table")
	}
}

func TestClampRollout(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{150, 100},
	}

	for _, c := range cases {
		if got := ClampRollout(c.in); got != c.want {
			t.Errorf("ClampRollout(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
