package syncer

import (
	"path/filepath"
	"strings"

	"mp3sync/internal/discover"
	"mp3sync/internal/syncpaths"
)

const (
	// MP3Extension is appended to destination names.
	MP3Extension = ".mp3"
	// TempPrefix and TempSuffix shape the intermediate WAV file names.
	TempPrefix = "mp3_sync"
	TempSuffix = ".wav"
)

// Candidate pairs a source FLAC file with its destination.
type Candidate struct {
	Name     string
	DestName string
	Source   string
	Dest     string
}

// NewCandidate derives the candidate for the source file name in dirs.
func NewCandidate(dirs syncpaths.Dirs, name string) Candidate {
	destName := DestName(name)
	return Candidate{
		Name:     name,
		DestName: destName,
		Source:   filepath.Join(dirs.Source, name),
		Dest:     filepath.Join(dirs.Dest, destName),
	}
}

// DestName strips the FLAC suffix from name and appends the MP3 suffix.
func DestName(name string) string {
	return strings.TrimSuffix(name, discover.FLACExtension) + MP3Extension
}
