package filesearch

import "testing"

func TestRulesIsIgnored(t *testing.T) {
	rules := NewRules(nil, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", false},
		{"src/app/component.tsx", false},
		{"node_modules/react/index.js", true},
		{"./node_modules/react/index.js", true},
		{"web/NODE_MODULES/x.js", true},
		{"/abs/project/.git/HEAD", true},
		{".github/workflows/ci.yml", false},
		{"target/debug/app", true},
		{"mytarget/file.rs", false},
		{"yarn.lock", true},
		{"Cargo.lock", true},
		{"server.LOG", true},
		{"dist.go", false},
		{"static/app.min.js", true},
		{"static/app.js.map", true},
		{"static/vendor.bundle.js", true},
		{"query.cache", true},
		{".eslintcache", false},
		{"internal/build.go", false},
		{"internal/build/steps.go", true},
	}

	for _, tt := range tests {
		if got := rules.IsIgnored(tt.path); got != tt.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRulesNormalizeMarkers(t *testing.T) {
	tests := []struct {
		marker string
		want   string
	}{
		{"node_modules", "/node_modules/"},
		{"/vendor/", "/vendor/"},
		{".idea", "/.idea/"},
		{"/yarn.lock", "/yarn.lock"},
		{"Pods/", "/pods/"},
		{"  ", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := normalizeDirMarker(tt.marker); got != tt.want {
			t.Errorf("normalizeDirMarker(%q) = %q, want %q", tt.marker, got, tt.want)
		}
	}
}

func TestRulesCustomLists(t *testing.T) {
	rules := NewRules([]string{"fixtures"}, []string{".snap"})

	if !rules.IsIgnored("testdata/fixtures/a.json") {
		t.Error("custom dir marker should ignore")
	}
	if !rules.IsIgnored("ui/__snapshots__/button.test.js.SNAP") {
		t.Error("custom pattern should ignore case-insensitively")
	}
	if rules.IsIgnored("node_modules/x.js") {
		t.Error("custom lists replace the defaults")
	}

	none := NewRules([]string{}, []string{})
	if none.IsIgnored("node_modules/app.log") {
		t.Error("empty lists disable the rules")
	}

	var nilRules *Rules
	if nilRules.IsIgnored("anything") {
		t.Error("nil rules ignore nothing")
	}
}
