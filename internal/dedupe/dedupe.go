package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent battle-report generation requests. Using a centralized
// singleflight.Group ensures that only one OpenAI call runs for a given
// battle while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// ReportGroup deduplicates battle-report generation requests keyed by
// battle ID (e.g. "battle:42").
var ReportGroup singleflight.Group
