package instagram

// profileResponse represents the web profile info endpoint response,
// trimmed to the fields the poller reads.
type profileResponse struct {
	Data struct {
		User struct {
			Username string    `json:"username"`
			FullName string    `json:"full_name"`
			Media    mediaEdge `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

type mediaEdge struct {
	Edges []struct {
		Node mediaNode `json:"node"`
	} `json:"edges"`
}

type mediaNode struct {
	ID        string `json:"id"`
	Shortcode string `json:"shortcode"`
	TakenAt   int64  `json:"taken_at_timestamp"`
	Caption   struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
}

func (n mediaNode) captionText() string {
	if len(n.Caption.Edges) == 0 {
		return ""
	}
	return n.Caption.Edges[0].Node.Text
}
