// Package textutil provides the string comparisons used to pair media server
// titles with folder names on disk.
//
// Similarity follows the ratio of a longest-matching-blocks sequence matcher
// computed over code points, so "Abbey Road" and "Abbey Road (Remastered)"
// score about 0.61 while unrelated names fall well below 0.5. Comparisons are
// case-insensitive.
package textutil
