package site

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Descriptor
	}{
		{
			name: "dev site",
			path: "/mnt/dev3/web/acme-extension/index.html",
			want: Descriptor{
				Type:     TypeDev,
				SiteRoot: "/mnt/dev3/web/acme-extension/",
				SiteName: "acme-extension.dev3",
				Server:   "dev3",
				DevSite:  "acme-extension",
				Path:     "index.html",
			},
		},
		{
			name: "dev site root exactly",
			path: "/mnt/dev12/web/acme/",
			want: Descriptor{
				Type:     TypeDev,
				SiteRoot: "/mnt/dev12/web/acme/",
				SiteName: "acme.dev12",
				Server:   "dev12",
				DevSite:  "acme",
			},
		},
		{
			name: "test site",
			path: "/mnt/srv1/acme-test/test/foo",
			want: Descriptor{
				Type:     TypeTest,
				SiteRoot: "/mnt/srv1/acme-test/test/",
				SiteName: "acme-test",
				Server:   "srv1",
				Client:   "acme",
				Path:     "foo",
			},
		},
		{
			name: "hyphenated test client",
			path: "/mnt/web-02/state-u-test/test/web/courseleaf/",
			want: Descriptor{
				Type:     TypeTest,
				SiteRoot: "/mnt/web-02/state-u-test/test/",
				SiteName: "state-u-test",
				Server:   "web-02",
				Client:   "state-u",
				Path:     "web/courseleaf/",
			},
		},
		{
			name: "prod current slot",
			path: "/mnt/srv1/acme/curr/bar",
			want: Descriptor{
				Type:     TypeProd,
				SiteRoot: "/mnt/srv1/acme/curr/",
				SiteName: "acme-curr",
				Server:   "srv1",
				Client:   "acme",
				Slot:     SlotCurr,
				Path:     "bar",
			},
		},
		{
			name: "prod next slot without trailing slash",
			path: "/mnt/srv1/acme/next",
			want: Descriptor{
				Type:     TypeProd,
				SiteRoot: "/mnt/srv1/acme/next",
				SiteName: "acme-next",
				Server:   "srv1",
				Client:   "acme",
				Slot:     SlotNext,
			},
		},
		{
			name: "prod prior slot",
			path: "/mnt/srv9/beta/prior/web/index.html",
			want: Descriptor{
				Type:     TypeProd,
				SiteRoot: "/mnt/srv9/beta/prior/",
				SiteName: "beta-prior",
				Server:   "srv9",
				Client:   "beta",
				Slot:     SlotPrior,
				Path:     "web/index.html",
			},
		},
		{
			name: "slot prefix is not a slot",
			path: "/mnt/srv1/acme/currency/x",
			want: Descriptor{Type: TypeUnknown},
		},
		{
			name: "unrelated path",
			path: "/tmp/unrelated/path",
			want: Descriptor{Type: TypeUnknown},
		},
		{
			name: "empty path",
			path: "",
			want: Descriptor{Type: TypeUnknown},
		},
		{
			name: "dev server needs digits",
			path: "/mnt/dev/web/acme/x",
			want: Descriptor{Type: TypeUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.path)
			if got != tt.want {
				t.Errorf("Classify(%q) =\n  %+v\nwant\n  %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	// Shaped like a test site under a dev server: the dev rule is tried first.
	path := "/mnt/dev3/web/acme-test/test/x"
	got := Classify(path)
	if got.Type != TypeDev {
		t.Fatalf("Classify(%q).Type = %v, want dev", path, got.Type)
	}
	if got.SiteName != "acme-test.dev3" {
		t.Errorf("SiteName = %q, want %q", got.SiteName, "acme-test.dev3")
	}

	// A test site whose remainder looks like a prod slot stays a test site.
	path = "/mnt/srv1/acme-test/test/next/x"
	if got := Classify(path); got.Type != TypeTest {
		t.Errorf("Classify(%q).Type = %v, want test", path, got.Type)
	}

	// A prod slot directory named after a test client: test is tried first.
	path = "/mnt/srv1/acme-test/test/"
	if got := Classify(path); got.Type != TypeTest {
		t.Errorf("Classify(%q).Type = %v, want test", path, got.Type)
	}
}

func TestClassify_UnusualPaths(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantType Type
		wantPath string
	}{
		{name: "newline in residual path", path: "/mnt/srv1/acme/curr/web/a\nb", wantType: TypeProd, wantPath: "web/a\nb"},
		{name: "newline in dev path", path: "/mnt/dev3/web/acme/x\ny", wantType: TypeDev, wantPath: "x\ny"},
		{name: "non-ASCII client", path: "/mnt/srv1/café/curr/web", wantType: TypeUnknown},
		{name: "non-ASCII server", path: "/mnt/sérv1/acme-test/test/web", wantType: TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.path)
			if got.Type != tt.wantType || got.Path != tt.wantPath {
				t.Errorf("Classify(%q) = %v %q, want %v %q", tt.path, got.Type, got.Path, tt.wantType, tt.wantPath)
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	paths := []string{
		"/mnt/dev3/web/acme-extension/index.html",
		"/mnt/srv1/acme-test/test/foo",
		"/mnt/srv1/acme/curr/bar",
		"/tmp/unrelated/path",
	}
	for _, p := range paths {
		if a, b := Classify(p), Classify(p); a != b {
			t.Errorf("Classify(%q) not idempotent: %+v vs %+v", p, a, b)
		}
	}
}

func TestClassifyWith_FirstMatchWins(t *testing.T) {
	reversed := []Rule{Rules[2], Rules[1], Rules[0]}

	// Under the reversed order nothing changes for unambiguous paths.
	if got := ClassifyWith(reversed, "/mnt/srv1/acme/curr/bar"); got.Type != TypeProd {
		t.Errorf("Type = %v, want prod", got.Type)
	}
	if got := ClassifyWith(nil, "/mnt/srv1/acme/curr/bar"); got.Type != TypeUnknown {
		t.Errorf("Type = %v with no rules, want unknown", got.Type)
	}
}

func TestDescriptor_Known(t *testing.T) {
	if (Descriptor{Type: TypeUnknown}).Known() {
		t.Error("unknown descriptor reported as known")
	}
	if (Descriptor{}).Known() {
		t.Error("zero descriptor reported as known")
	}
	if !(Descriptor{Type: TypeDev}).Known() {
		t.Error("dev descriptor reported as unknown")
	}
}

func TestClassifyDir(t *testing.T) {
	tests := []struct {
		dir      string
		wantType Type
		wantRoot string
	}{
		{"/mnt/dev3/web/acme", TypeDev, "/mnt/dev3/web/acme/"},
		{"/mnt/dev3/web/acme/", TypeDev, "/mnt/dev3/web/acme/"},
		{"/mnt/srv1/acme-test/test", TypeTest, "/mnt/srv1/acme-test/test/"},
		{"/mnt/srv1/acme/curr/web/courseleaf", TypeProd, "/mnt/srv1/acme/curr/"},
		{"/home/jdoe", TypeUnknown, ""},
	}
	for _, tt := range tests {
		got := ClassifyDir(tt.dir)
		if got.Type != tt.wantType || got.SiteRoot != tt.wantRoot {
			t.Errorf("ClassifyDir(%q) = %v %q, want %v %q", tt.dir, got.Type, got.SiteRoot, tt.wantType, tt.wantRoot)
		}
	}
	// Plain Classify needs the separator to see a dev site root.
	if Classify("/mnt/dev3/web/acme").Known() {
		t.Error("Classify without trailing slash unexpectedly matched")
	}
}
