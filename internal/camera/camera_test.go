package camera

import (
	"context"
	"errors"
	"testing"
)

func TestOpenBindsAndPlays(t *testing.T) {
	src := &Synthetic{}
	var feed Feed

	if err := Open(context.Background(), src, &feed); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !feed.Playing() {
		t.Fatal("Expected feed playing")
	}
	if src.LiveTracks() != 1 {
		t.Fatalf("Expected 1 live track, got %d", src.LiveTracks())
	}

	feed.Stop()
	if src.LiveTracks() != 0 {
		t.Fatalf("Expected tracks stopped, got %d live", src.LiveTracks())
	}
	if feed.Playing() {
		t.Fatal("feed still playing after Stop")
	}
}

func TestOpenDeniedLeavesFeedEmpty(t *testing.T) {
	src := &Synthetic{Deny: ErrPermissionDenied}
	var feed Feed

	err := Open(context.Background(), src, &feed)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got=%v want=%v", err, ErrPermissionDenied)
	}
	if feed.Playing() {
		t.Fatal("denied feed should not play")
	}
}

func TestBindReplacesAndStopsPreviousStream(t *testing.T) {
	src := &Synthetic{}
	var feed Feed
	ctx := context.Background()

	if err := Open(ctx, src, &feed); err != nil {
		t.Fatal(err)
	}
	if err := Open(ctx, src, &feed); err != nil {
		t.Fatal(err)
	}
	if src.LiveTracks() != 1 {
		t.Fatalf("Expected only the newest track live, got %d", src.LiveTracks())
	}
}

func TestBackdropIsOpaque(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.99} {
		if c := Backdrop(0.5, v, 1.5); c.A != 255 {
			t.Errorf("Backdrop alpha at v=%v: got %d", v, c.A)
		}
	}
}

func TestRequestPrefersRearCamera(t *testing.T) {
	src := &Synthetic{}
	stream, err := src.Request(context.Background(), RearVideo)
	if err != nil {
		t.Fatal(err)
	}
	track := stream.Tracks()[0].(*SyntheticTrack)
	if track.Facing() != FacingEnvironment {
		t.Errorf("Expected facing %q, got %q", FacingEnvironment, track.Facing())
	}
}
