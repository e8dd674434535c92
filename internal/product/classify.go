package product

import (
	"strings"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
)

// FailureCategory says why a version could not be determined.
type FailureCategory int

const (
	// CategoryUnclassified is any failure not recognised below.
	CategoryUnclassified FailureCategory = iota
	// CategoryPermissionDenied means the owner execute bit is missing.
	CategoryPermissionDenied
	// CategoryBinaryMissing means the shell could not find the binary.
	CategoryBinaryMissing
	// CategoryIncompatibleRuntime means the dynamic loader could not satisfy
	// the binary, which usually means it was built for another RHEL release.
	CategoryIncompatibleRuntime
	// CategoryOtherRuntime is a failure that never reached the binary.
	CategoryOtherRuntime
)

func (c FailureCategory) String() string {
	switch c {
	case CategoryPermissionDenied:
		return "permission-denied"
	case CategoryBinaryMissing:
		return "binary-missing"
	case CategoryIncompatibleRuntime:
		return "incompatible-runtime-library"
	case CategoryOtherRuntime:
		return "other-runtime-error"
	default:
		return "unclassified"
	}
}

// Result strings.
const (
	NotFound         = "not found"
	NotAGitRepo      = "not a git repo"
	NoExecPermission = NotFound + " (no execute permission)"
	WrongRHELVersion = NotFound + " (looks like wrong RHEL version)"
	FileDoesNotExist = NotFound + " (file does not exist)"
)

// Classification is the outcome of Classify.
type Classification struct {
	Category FailureCategory
	Message  string
}

// Classify inspects the stderr of a failed binary invocation. Only the
// messages the shell and dynamic loader print for binaryPath are recognised;
// the exit code is ignored.
func Classify(binaryPath string, failure *shell.ExitError) Classification {
	if failure == nil {
		return Classification{Category: CategoryUnclassified, Message: NotFound}
	}

	stderr := failure.StderrText()
	switch {
	case strings.Contains(stderr, binaryPath+": error while loading shared libraries"):
		return Classification{Category: CategoryIncompatibleRuntime, Message: WrongRHELVersion}
	case strings.Contains(stderr, binaryPath+": No such file or directory"):
		return Classification{Category: CategoryBinaryMissing, Message: FileDoesNotExist}
	default:
		return Classification{Category: CategoryUnclassified, Message: NotFound}
	}
}
