package notices

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lakshay-nasa/city-scout/selection"
)

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send:      make(chan []byte, 10),
		SessionID: "session1",
	}

	hub.register <- client

	hub.Publish("session1", selection.Notice{Kind: selection.NoticeSuccess, Message: "Added Eiffel Tower to itinerary"})

	select {
	case got := <-client.Send:
		var out outboundNotice
		if err := json.Unmarshal(got, &out); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if out.Kind != selection.NoticeSuccess || out.Message != "Added Eiffel Tower to itinerary" {
			t.Fatalf("unexpected notice %+v", out)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	hub.unregister <- client
}

func TestSlowClientDropThenUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// unbuffered Send with no reader forces the broadcast drop path
	slow := &Client{Send: make(chan []byte), SessionID: "s"}
	live := &Client{Send: make(chan []byte, 10), SessionID: "s"}
	hub.register <- slow
	hub.register <- live

	hub.Publish("s", selection.Notice{Kind: selection.NoticeWarn, Message: "first"})
	select {
	case <-live.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	// the read pump still reports the disconnect after the drop; the hub
	// must not close the dropped client's Send a second time
	hub.unregister <- slow

	hub.Publish("s", selection.Notice{Kind: selection.NoticeSuccess, Message: "second"})
	select {
	case <-live.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("hub stopped serving after unregister of a dropped client")
	}
}

func TestHubIsolatesSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), SessionID: "mine"}
	other := &Client{Send: make(chan []byte, 10), SessionID: "other"}
	hub.register <- mine
	hub.register <- other

	hub.Publish("mine", selection.Notice{Kind: selection.NoticeWarn, Message: "warn"})

	select {
	case <-mine.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("notice leaked across sessions: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
