package models

// Notification holds the visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Message is a push notification addressed to a topic.
type Message struct {
	Notification Notification `json:"notification"`
	Topic        string       `json:"topic"`
}
