// Command plexart downloads poster, fanart, and album cover artwork from a
// Plex server into the media folders the server indexes.
//
// The root command runs one library pass. Subcommands list libraries, check
// connectivity, manage the configuration file, and show run history.
package main
