package datastore

// Result tables. Rows are appended per run; collected_at tells runs apart.

var ArtistsTable = Table{Name: "artists", Columns: []Column{
	{Name: "artist", Type: Text},
	{Name: "artist_id", Type: Text},
	{Name: "artist_name", Type: Text},
	{Name: "followers", Type: Integer},
	{Name: "popularity", Type: Integer},
	{Name: "track_count", Type: Integer},
	{Name: "post_count", Type: Integer},
	{Name: "video_count", Type: Integer},
	{Name: "failed_source", Type: Text},
	{Name: "collected_at", Type: Timestamp},
}}

var TracksTable = Table{Name: "tracks", Columns: []Column{
	{Name: "artist", Type: Text},
	{Name: "position", Type: Integer},
	{Name: "track_id", Type: Text},
	{Name: "track_name", Type: Text},
	{Name: "track_popularity", Type: Integer},
	{Name: "preview_url", Type: Text},
	{Name: "danceability", Type: Real},
	{Name: "energy", Type: Real},
	{Name: "speechiness", Type: Real},
	{Name: "acousticness", Type: Real},
	{Name: "instrumentalness", Type: Real},
	{Name: "liveness", Type: Real},
	{Name: "loudness", Type: Real},
	{Name: "tempo", Type: Real},
	{Name: "valence", Type: Real},
	{Name: "collected_at", Type: Timestamp},
}}

var PostsTable = Table{Name: "posts", Columns: []Column{
	{Name: "artist", Type: Text},
	{Name: "subreddit_label", Type: Text},
	{Name: "title", Type: Text},
	{Name: "score", Type: Integer},
	{Name: "num_comments", Type: Integer},
	{Name: "upvote_ratio", Type: Real},
	{Name: "url", Type: Text},
	{Name: "created_at", Type: Real},
	{Name: "collected_at", Type: Timestamp},
}}

var VideosTable = Table{Name: "videos", Columns: []Column{
	{Name: "artist", Type: Text},
	{Name: "video_id", Type: Text},
	{Name: "title", Type: Text},
	{Name: "description", Type: Text},
	{Name: "published_at", Type: Text},
	{Name: "view_count", Type: Integer},
	{Name: "like_count", Type: Integer},
	{Name: "comment_count", Type: Integer},
	{Name: "statistics", Type: Text},
	{Name: "collected_at", Type: Timestamp},
}}

// ResultTables lists every table a result sink writes.
var ResultTables = []Table{ArtistsTable, TracksTable, PostsTable, VideosTable}
