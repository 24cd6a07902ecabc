// Package main hosts the mp3sync CLI entrypoint and command graph.
//
// The root command mirrors one FLAC directory into an MP3 directory. The
// check and config subcommands help set up the external tools and the
// optional configuration file. Exit codes are decided here, in exitCode,
// from the typed errors the internal packages return.
package main
