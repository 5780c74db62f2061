package models

import "strings"

// API protocol versions understood by the sync endpoint, in their
// client-facing dotted form.
const (
	APIVersion20161215 = "2016-12-15"
	APIVersion20190520 = "2019-05-20"
	APIVersion20200115 = "2020-01-15"
)

// NormalizeAPIVersion collapses a dotted or dashed version tag to its
// compact form ("2020-01-15" → "20200115"). Downstream collaborators only
// ever see the compact form; the normalization is part of the save-pipeline
// contract rather than a transport nicety.
func NormalizeAPIVersion(version string) string {
	return strings.NewReplacer("-", "", ".", "").Replace(version)
}
