package handlers

import (
	"encoding/xml"
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"shopkeeper/internal/types"
)

// feedItemLimit bounds how much history the feed exposes
const feedItemLimit = 100

// rssFeed is the RSS 2.0 document for the listing event feed
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	GUID        string `xml:"guid"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// GetFeed serves the RSS feed of listing events for non-hidden listings
func (h *APIHandler) GetFeed(c *fiber.Ctx) error {
	events, err := h.listing.RecentEvents(c.Context(), feedItemLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to build feed: %v", err)))
	}

	items := make([]rssItem, 0, len(events))
	for i := range events {
		event := &events[i]
		items = append(items, rssItem{
			GUID:        fmt.Sprintf("%d", event.ID),
			Title:       event.FeedTitle(),
			Description: event.FeedDescription(),
			PubDate:     event.CreatedAt.Format(time.RFC1123Z),
		})
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "Shopkeeper",
			Link:        c.BaseURL(),
			Description: "Listing events for Shopkeeper",
			Items:       items,
		},
	}

	body, err := xml.Marshal(feed)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}

	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.Send(append([]byte(xml.Header), body...))
}
