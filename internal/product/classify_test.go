package product

import (
	"testing"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

func TestClassify(t *testing.T) {
	const bin = "/bin/foo"

	tests := []struct {
		name     string
		failure  *shell.ExitError
		want     FailureCategory
		wantText string
	}{
		{
			name:     "shared library",
			failure:  &shell.ExitError{Code: 127, Stderr: []byte("/bin/foo: error while loading shared libraries: libssl.so.10: cannot open shared object file\n")},
			want:     CategoryIncompatibleRuntime,
			wantText: "not found (looks like wrong RHEL version)",
		},
		{
			name:     "missing binary",
			failure:  &shell.ExitError{Code: 127, Stderr: []byte("bash: line 1: /bin/foo: No such file or directory\n")},
			want:     CategoryBinaryMissing,
			wantText: "not found (file does not exist)",
		},
		{
			name:     "other stderr",
			failure:  &shell.ExitError{Code: 1, Stderr: []byte("segmentation fault\n")},
			want:     CategoryUnclassified,
			wantText: "not found",
		},
		{
			name:     "message about another path",
			failure:  &shell.ExitError{Code: 127, Stderr: []byte("/bin/bar: No such file or directory\n")},
			want:     CategoryUnclassified,
			wantText: "not found",
		},
		{
			name:     "exit code alone means nothing",
			failure:  &shell.ExitError{Code: 127},
			want:     CategoryUnclassified,
			wantText: "not found",
		},
		{
			name:     "nil failure",
			failure:  nil,
			want:     CategoryUnclassified,
			wantText: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(bin, tt.failure)
			if got.Category != tt.want {
				t.Errorf("Category = %v, want %v", got.Category, tt.want)
			}
			if got.Message != tt.wantText {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantText)
			}
		})
	}
}

func TestFailureCategory_String(t *testing.T) {
	tests := map[FailureCategory]string{
		CategoryPermissionDenied:    "permission-denied",
		CategoryBinaryMissing:       "binary-missing",
		CategoryIncompatibleRuntime: "incompatible-runtime-library",
		CategoryOtherRuntime:        "other-runtime-error",
		CategoryUnclassified:        "unclassified",
		FailureCategory(99):         "unclassified",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(c), got, want)
		}
	}
}
