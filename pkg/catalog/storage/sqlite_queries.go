package storage

// Queries run against the SafeTube catalog. Nullable path columns are folded to
// empty strings so rows scan into plain string fields.
const (
	selectSetting = `SELECT key, value FROM settings WHERE key = ? LIMIT 1`

	selectExpiredVideos = `
		SELECT id,
		       COALESCE(local_path, '') AS local_path,
		       COALESCE(thumbnail_path, '') AS thumbnail_path,
		       created_at
		FROM videos
		WHERE created_at < ?
		ORDER BY id ASC`

	selectExpiredVideosWithSubtitles = `
		SELECT id,
		       COALESCE(local_path, '') AS local_path,
		       COALESCE(thumbnail_path, '') AS thumbnail_path,
		       COALESCE(subtitle_path, '') AS subtitle_path,
		       created_at
		FROM videos
		WHERE created_at < ?
		ORDER BY id ASC`

	deleteVideo = `DELETE FROM videos WHERE id = ?`
)
