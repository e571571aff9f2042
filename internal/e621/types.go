package e621

import "strings"

// Ext is the declared file extension of a post's media.
type Ext string

const (
	ExtGIF  Ext = "gif"
	ExtJPG  Ext = "jpg"
	ExtPNG  Ext = "png"
	ExtSWF  Ext = "swf"
	ExtWebM Ext = "webm"
)

// KnownExts lists every extension the catalog is documented to return.
var KnownExts = []Ext{ExtGIF, ExtJPG, ExtPNG, ExtSWF, ExtWebM}

// Known reports whether e belongs to the documented extension set.
func (e Ext) Known() bool {
	for _, k := range KnownExts {
		if e == k {
			return true
		}
	}
	return false
}

// Rating is the content rating letter of a post.
type Rating string

const (
	RatingSafe         Rating = "s"
	RatingQuestionable Rating = "q"
	RatingExplicit     Rating = "e"
)

// String returns the long form of the rating.
func (r Rating) String() string {
	switch r {
	case RatingSafe:
		return "safe"
	case RatingQuestionable:
		return "questionable"
	case RatingExplicit:
		return "explicit"
	default:
		return strings.TrimSpace(string(r))
	}
}

// PostsResponse mirrors the payload returned by /posts.json.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Post describes a single catalog entry. Posts are treated as read-only once
// returned by the client.
type Post struct {
	ID            int64         `json:"id"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
	File          File          `json:"file"`
	Preview       Preview       `json:"preview"`
	Sample        Sample        `json:"sample"`
	Score         Score         `json:"score"`
	Tags          Tags          `json:"tags"`
	Rating        Rating        `json:"rating"`
	FavCount      int64         `json:"fav_count"`
	Sources       []string      `json:"sources"`
	Pools         []int64       `json:"pools"`
	Relationships Relationships `json:"relationships"`
	ApproverID    *int64        `json:"approver_id"`
	UploaderID    int64         `json:"uploader_id"`
	Description   string        `json:"description"`
	CommentCount  int64         `json:"comment_count"`
	IsFavorited   bool          `json:"is_favorited"`
	HasNotes      bool          `json:"has_notes"`
	Duration      *float64      `json:"duration"`
}

// File holds the original media attributes.
type File struct {
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	Ext    Ext    `json:"ext"`
	Size   int64  `json:"size"`
	MD5    string `json:"md5"`
	URL    string `json:"url"`
}

// Preview is the thumbnail rendition.
type Preview struct {
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	URL    string `json:"url"`
}

// Sample is the downscaled rendition, present when Has is true.
type Sample struct {
	Has    bool   `json:"has"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	URL    string `json:"url"`
}

// Score aggregates the post's votes.
type Score struct {
	Up    int64 `json:"up"`
	Down  int64 `json:"down"`
	Total int64 `json:"total"`
}

// Tags groups a post's tags by category.
type Tags struct {
	General   []string `json:"general"`
	Artist    []string `json:"artist"`
	Copyright []string `json:"copyright"`
	Character []string `json:"character"`
	Species   []string `json:"species"`
	Invalid   []string `json:"invalid"`
	Meta      []string `json:"meta"`
	Lore      []string `json:"lore"`
}

// Relationships links a post to its parent and children.
type Relationships struct {
	ParentID          *int64  `json:"parent_id"`
	HasChildren       bool    `json:"has_children"`
	HasActiveChildren bool    `json:"has_active_children"`
	Children          []int64 `json:"children"`
}
