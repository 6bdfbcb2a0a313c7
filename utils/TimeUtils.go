package utils

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// istOffset is a constant UTC+5:30 shift applied with plain arithmetic,
// no timezone database lookup involved.
const istOffset = 5*time.Hour + 30*time.Minute

const invalidDateArtifact = "Invalid Date"

var timestampLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
}

// FormatTimestampIST converts an absolute UTC/GMT timestamp string to the
// "Jan 2, 2006" display form in Indian Standard Time. An unparseable input
// yields the literal "Invalid Date" string instead of an error, matching the
// behavior the callers of the listing endpoint already depend on.
func FormatTimestampIST(value string) string {
	parsed, ok := parseTimestamp(value)
	if !ok {
		log.Debugf("unparseable timestamp %q, rendering invalid date artifact", value)
		return invalidDateArtifact
	}
	return parsed.Add(istOffset).Format("Jan 2, 2006")
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
