// Package model defines shared data structures.
package model

import "time"

// Config defines dictation practice settings.
type Config struct {
	Lesson       string
	LessonDir    string
	PreserveCase bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lesson      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed dictation exercise.
type SessionStats struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Lesson         string
	PreserveCase   bool
	TotalWords     int
	AttemptedWords int
	CorrectWords   int
	IncorrectWords int
	AccuracyPct    float64
	CompletionPct  float64
	Substitutions  int
	Insertions     int
	Deletions      int
	DurationMs     int64
}

// SentenceResult stores one sentence's transcript and counts for a session.
type SentenceResult struct {
	Index      int
	Reference  string
	Transcript string
	Attempted  bool
	RefWords   int
	Correct    int
	Incorrect  int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID      int64
	EndedAt        time.Time
	Lesson         string
	TotalWords     int
	AttemptedWords int
	CorrectWords   int
	DurationMs     int64
}
