package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	defer func() { Version, Commit, Date = saved[0], saved[1], saved[2] }()

	tests := []struct {
		name                  string
		version, commit, date string
		info                  debug.BuildInfo
		want                  [3]string
	}{
		{
			name:    "module and vcs",
			version: "dev", commit: "none", date: "unknown",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2024-05-01T00:00:00Z"},
				},
			},
			want: [3]string{"v1.2.3", "abc123", "2024-05-01T00:00:00Z"},
		},
		{
			name:    "devel build",
			version: "dev", commit: "none", date: "unknown",
			info:    debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:    [3]string{"dev", "none", "unknown"},
		},
		{
			name:    "ldflags win",
			version: "v9.9.9", commit: "feed", date: "today",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v1.0.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
			},
			want: [3]string{"v9.9.9", "feed", "today"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date
			fill(&tt.info)
			if got := [3]string{Version, Commit, Date}; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(Template(), "commit: "+Commit) {
		t.Errorf("Template() = %q", Template())
	}
}
