package constant

// VideoExtensions lists the file extensions treated as playable video by the library browser.
var VideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".webm", ".ts", ".m4v", ".hevc", ".flv", ".wmv", ".mpg", ".mpeg", ".3gp",
}

// SubtitleExtensions lists sidecar subtitle formats mpv picks up next to a video.
var SubtitleExtensions = []string{".srt", ".ass", ".ssa", ".vtt", ".sub"}
