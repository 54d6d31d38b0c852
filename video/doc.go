// Package video provides decodable frame sources.
//
// A [Source] yields frames in its native pixel order one at a time and keeps
// an absolute frame position that can be moved with [Source.Seek]. Two
// implementations are provided:
//
//   - [FFmpeg] decodes any container ffmpeg understands by piping raw video
//     from an ffmpeg child process, with metadata from ffprobe.
//   - [OpenDir] plays a directory of PNG or JPEG images, sorted by filename.
//
// [NewOpener] returns an [Opener] that picks between them based on whether the
// path is a directory.
package video
