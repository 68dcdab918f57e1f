// Package videoserver exposes the extraction engine as MCP tools:
// get_video_info, get_transcript, search_videos, get_audio_url,
// get_playlist_info, batch_get_info, health_check.
//
// A failed call never crashes the server: handlers report extraction
// failures as a structured {error_type, message} record in the output so
// the calling agent can branch on the taxonomy kind.
package videoserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all video extraction tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerGetVideoInfo(server)
	registerGetTranscript(server)
	registerSearchVideos(server)
	registerGetAudioURL(server)
	registerGetPlaylistInfo(server)
	registerBatchGetInfo(server)
	registerHealthCheck(server)
}
