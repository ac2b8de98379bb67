package model

import (
	"slices"
	"testing"
)

// TestProductTagList 标签列表的序列化往返，空列表存为空串.
func TestProductTagList(t *testing.T) {
	var p Product

	if err := p.SetTagList([]string{"strategy", "co-op"}); err != nil {
		t.Fatalf("SetTagList: %v", err)
	}

	got, err := p.TagList()
	if err != nil {
		t.Fatalf("TagList: %v", err)
	}

	if !slices.Equal(got, []string{"strategy", "co-op"}) {
		t.Errorf("TagList = %v", got)
	}

	if err := p.SetTagList(nil); err != nil {
		t.Fatalf("SetTagList(nil): %v", err)
	}

	if p.TagsJSON != "" {
		t.Errorf("empty tag list should store empty string, got %q", p.TagsJSON)
	}
}

func TestProductPlatformList(t *testing.T) {
	var p Product

	if err := p.SetPlatformList([]Platform{PlatformWindows, PlatformLinux}); err != nil {
		t.Fatalf("SetPlatformList: %v", err)
	}

	got, err := p.PlatformList()
	if err != nil {
		t.Fatalf("PlatformList: %v", err)
	}

	if !slices.Equal(got, []Platform{PlatformWindows, PlatformLinux}) {
		t.Errorf("PlatformList = %v", got)
	}
}

// TestProductDecodeBadJSON 落库数据损坏时返回错误而非 panic.
func TestProductDecodeBadJSON(t *testing.T) {
	p := Product{TagsJSON: "{not json"}

	if _, err := p.TagList(); err == nil {
		t.Error("expected error for corrupted tags json")
	}
}
