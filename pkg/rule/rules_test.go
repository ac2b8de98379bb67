package rule_test

import (
	"testing"

	"github.com/allservices/registry/pkg/rule"
)

// TestSlugRule slug 只接受小写字母数字段与连字符分隔.
func TestSlugRule(t *testing.T) {
	valid := []string{"a", "my-game", "game2-deluxe", "123"}
	invalid := []string{"", "My-Game", "my_game", "-leading", "trailing-", "double--dash", "spa ce"}

	for _, s := range valid {
		if err := rule.ValidateVar(s, "slug"); err != nil {
			t.Errorf("slug %q should be valid: %v", s, err)
		}
	}

	for _, s := range invalid {
		if err := rule.ValidateVar(s, "slug"); err == nil {
			t.Errorf("slug %q should be invalid", s)
		}
	}
}

// TestSemverRule semver 允许预发布与构建元数据后缀.
func TestSemverRule(t *testing.T) {
	valid := []string{"0.0.1", "1.2.3", "1.0.0-beta.1", "2.0.0+build.5", "1.0.0-rc.1+sha.abc"}
	invalid := []string{"", "1.2", "v1.2.3", "1.2.3.4", "one.two.three"}

	for _, s := range valid {
		if err := rule.ValidateVar(s, "semver"); err != nil {
			t.Errorf("version %q should be valid: %v", s, err)
		}
	}

	for _, s := range invalid {
		if err := rule.ValidateVar(s, "semver"); err == nil {
			t.Errorf("version %q should be invalid", s)
		}
	}
}
