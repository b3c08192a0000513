package entities

import "errors"

// Domain errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrEmptyTranscriptID = errors.New("transcript id is empty")
	ErrNilInsight        = errors.New("insight is nil")
	ErrEmptyCompletion   = errors.New("empty completion")
	ErrUnparsableOutput  = errors.New("model output is not valid JSON")
)
