package entities

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentence is one speaker-attributed line of a transcript
type Sentence struct {
	Speaker   string  `json:"speaker"`
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"` // seconds from meeting start
}

// Transcript is a recorded meeting as delivered by the transcript source
type Transcript struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            time.Time  `json:"date"`
	DurationMinutes float64    `json:"durationMinutes"`
	Participants    []string   `json:"participants"`
	Sentences       []Sentence `json:"sentences"`
}

// Text concatenates the sentences as "Speaker: text" lines
func (t Transcript) Text() string {
	var sb strings.Builder
	for _, s := range t.Sentences {
		speaker := strings.TrimSpace(s.Speaker)
		if speaker == "" {
			speaker = "Unknown"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", speaker, strings.TrimSpace(s.Text)))
	}
	return sb.String()
}

// DurationRounded returns the duration in whole minutes
func (t Transcript) DurationRounded() int {
	if t.DurationMinutes <= 0 {
		return 0
	}
	return int(math.Round(t.DurationMinutes))
}

// Timestamp formats a start offset in seconds as mm:ss using integer division
func Timestamp(startSeconds float64) string {
	if startSeconds < 0 {
		startSeconds = 0
	}
	total := int(startSeconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
