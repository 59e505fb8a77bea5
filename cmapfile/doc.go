// Package cmapfile reads and writes combinatorial maps in a line-oriented
// text format with [META], [BETAS], [UNUSED] and [VERTICES] sections.
//
// The format is round-trip safe for topology, the unused-dart set and
// vertex positions. File-level helpers transparently compress by
// extension: .gz uses gzip, .lz4 uses lz4 block streams.
package cmapfile
