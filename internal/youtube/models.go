package youtube

// Wire types for the YouTube Data API v3. Only the fields the client
// reads are declared.

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID      videoID `json:"id"`
	Snippet snippet `json:"snippet"`
}

// videoID appears as an object in search responses and a plain string in
// video list responses; this form covers search.
type videoID struct {
	VideoID string `json:"videoId"`
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string         `json:"id"`
	Snippet        snippet        `json:"snippet"`
	ContentDetails contentDetails `json:"contentDetails"`
}

type snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type contentDetails struct {
	Duration string `json:"duration"`
}

type thumbnails struct {
	Default thumbnail `json:"default"`
	Medium  thumbnail `json:"medium"`
	High    thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// best returns the highest-quality thumbnail available.
func (t thumbnails) best() string {
	if t.High.URL != "" {
		return t.High.URL
	}
	if t.Medium.URL != "" {
		return t.Medium.URL
	}
	return t.Default.URL
}
