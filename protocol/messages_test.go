package protocol

import (
	"testing"

	"github.com/wricardo/mcp-training/unogame/game/engine"
)

func TestDecodeDropCard(t *testing.T) {
	data := []byte(`{"type":"DropCard","card":{"rank":"5","color":"Red"}}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	drop, ok := msg.(DropCard)
	if !ok {
		t.Fatalf("Expected DropCard, got %T", msg)
	}
	want := engine.Card{Rank: engine.Five, Color: engine.Red}
	if drop.Card != want {
		t.Errorf("Expected card %s, got %s", want, drop.Card)
	}
}

func TestDecodePublishMessage(t *testing.T) {
	data := []byte(`{"type":"PublishMessage","sender":"alice","message":"hi"}`)

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	pub, ok := msg.(PublishMessage)
	if !ok {
		t.Fatalf("Expected PublishMessage, got %T", msg)
	}
	if pub.Sender != "alice" || pub.Message != "hi" {
		t.Errorf("Unexpected payload: %+v", pub)
	}
}

func TestDecodePayloadlessMessages(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{`{"type":"StartMessage"}`, StartMessage{Type: TypeStartMessage}},
		{`{"type":"TakeFromPile"}`, TakeFromPile{Type: TypeTakeFromPile}},
	}

	for _, tt := range tests {
		msg, err := Decode([]byte(tt.raw))
		if err != nil {
			t.Errorf("Decode(%s) failed: %v", tt.raw, err)
			continue
		}
		if msg != tt.want {
			t.Errorf("Decode(%s) = %#v, want %#v", tt.raw, msg, tt.want)
		}
	}
}

func TestDecodeRejectsUnknownAndMalformed(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"Nope"}`)); err == nil {
		t.Error("Expected error for unknown message type")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed payload")
	}
	if _, err := Decode([]byte(`{"type":"DropCard","card":"oops"}`)); err == nil {
		t.Error("Expected error for malformed card payload")
	}
}
