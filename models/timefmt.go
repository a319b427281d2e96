// ABOUTME: Timestamp rendering helpers for call records
// ABOUTME: Formats epoch milliseconds in the fixed IST (UTC+5:30) offset
package models

import "time"

// The backend timestamps calls in epoch millis; the operators read IST.
var istZone = time.FixedZone("IST", 5*60*60+30*60)

// FormatTimestampIST renders epoch milliseconds as e.g.
// "Nov 15, 2023 at 03:43 AM IST". Zero or negative input means the
// timestamp is unknown and renders as "N/A".
func FormatTimestampIST(millis int64) string {
	if millis <= 0 {
		return "N/A"
	}
	t := time.UnixMilli(millis).In(istZone)
	return t.Format("Jan 02, 2006 at 03:04 PM") + " IST"
}
