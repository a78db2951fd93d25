package version

import (
	"runtime/debug"
	"testing"

	"unirank/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	vcs := func(kv ...string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			bi := &debug.BuildInfo{}
			for i := 0; i+1 < len(kv); i += 2 {
				bi.Settings = append(bi.Settings, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
			}
			return bi, true
		}
	}
	none := func() (*debug.BuildInfo, bool) { return nil, false }

	cases := []struct {
		name         string
		read         func() (*debug.BuildInfo, bool)
		commit, date string
		want         BuildInfo
	}{
		{"no build info", none, "", "", BuildInfo{Service: "unirank-api", Version: "dev", Commit: "none", Date: "unknown"}},
		{"vcs fallback", vcs("vcs.revision", "abc123", "vcs.time", "2025-09-02T10:00:00Z", "vcs.modified", "true"), "", "",
			BuildInfo{Service: "unirank-api", Version: "dev", Commit: "abc123", Date: "2025-09-02T10:00:00Z", Modified: true}},
		{"ldflags win", vcs("vcs.revision", "abc123", "vcs.time", "2025-09-02T10:00:00Z"), "f00d", "2025-10-01",
			BuildInfo{Service: "unirank-api", Version: "dev", Commit: "f00d", Date: "2025-10-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testkit.Serial(t)
			testkit.Swap(t, &readBuildInfo, tc.read)
			testkit.Swap(t, &commit, tc.commit)
			testkit.Swap(t, &date, tc.date)
			if got := Info("unirank-api"); got != tc.want {
				t.Fatalf("Info = %+v want %+v", got, tc.want)
			}
		})
	}
}
