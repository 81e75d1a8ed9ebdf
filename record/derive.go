package record

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/surveyline/intake/model"
)

// Digest returns the hex SHA-256 of the UTF-8 bytes of s. Stored emails,
// ages and derived submission ids all use this function; the log carries no
// version marker, so changing it invalidates every existing line.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// UTC hour bucket, e.g. "2024031914" for 2024-03-19 14:xx.
const hourBucket = "2006010215"

// DeriveSubmissionID computes sha256(lowercase(email) + UTC hour bucket).
// Submissions from the same address within the same clock hour collapse to a
// single id. That includes two genuinely distinct submissions in the same
// hour; the collision is the dedup mechanism, not a bug to fix.
func DeriveSubmissionID(email string, now time.Time) string {
	return Digest(strings.ToLower(email) + now.UTC().Format(hourBucket))
}

// Derive transforms a validated submission into its storable record. It is
// pure: the clock, peer address and user agent arrive as arguments, so the
// same inputs always produce the same record.
func Derive(sub model.SurveySubmission, now time.Time, ip string, userAgent *string) model.StoredSurveyRecord {
	id := ""
	if sub.SubmissionID != nil {
		id = *sub.SubmissionID
	}
	if id == "" {
		id = DeriveSubmissionID(sub.Email, now)
	}

	return model.StoredSurveyRecord{
		Name:         sub.Name,
		Email:        Digest(strings.ToLower(sub.Email)),
		Age:          Digest(strconv.Itoa(*sub.Age)),
		Consent:      *sub.Consent,
		Rating:       *sub.Rating,
		Comments:     sub.Comments,
		SubmissionID: id,
		ReceivedAt:   now.UTC(),
		IP:           ip,
		UserAgent:    userAgent,
	}
}
