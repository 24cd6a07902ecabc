// Package syncer converts a directory of FLAC files into a parallel directory
// of MP3 files.
//
// A run resolves the working directories once, enumerates the source FLAC
// files once, then walks them sequentially: existing destinations are
// skipped, everything else is decoded into a scoped temporary WAV file and
// encoded into the destination. The first failure aborts the run after the
// in-flight destination has been removed, so a destination either does not
// exist or is the complete output of a successful encode.
package syncer
