package version

import "strconv"

//go:generate go run ../../cmd/gen --input ../../version.txt --output zz_generated.version.go --package version

// Separator joins the fields of a rendered version.
const Separator = "."

// Identity is a (major, minor, patch) version triple.
type Identity struct {
	Major uint `json:"major"`
	Minor uint `json:"minor"`
	Patch uint `json:"patch"`
}

// Current returns the [Identity] of this build.
func Current() Identity {
	return Identity{
		Major: Major,
		Minor: Minor,
		Patch: Patch,
	}
}

// String renders the identity with [Format].
func (i Identity) String() string {
	return Format(i.Major, i.Minor, i.Patch)
}

// Format renders a version as "<major>.<minor>.<patch>" using plain base-10
// digits, with no padding, prefix or suffix.
func Format(major, minor, patch uint) string {
	b := make([]byte, 0, 3*3+2)
	b = strconv.AppendUint(b, uint64(major), 10)
	b = append(b, Separator...)
	b = strconv.AppendUint(b, uint64(minor), 10)
	b = append(b, Separator...)
	b = strconv.AppendUint(b, uint64(patch), 10)

	return string(b)
}
