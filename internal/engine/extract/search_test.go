package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_video/internal/engine"
)

func TestSearch(t *testing.T) {
	setupEngine(t)

	searchJSON := []byte(`{
		"id": "golang tutorial",
		"entries": [
			{"id": "aaaaaaaaaaa", "title": "Go in 100 Seconds", "duration": 163, "channel": "Fireship", "view_count": 2000000},
			{"id": "bbbbbbbbbbb", "title": "", "duration": 10},
			{"id": "ccccccccccc", "title": "Learn Go", "uploader": "freeCodeCamp"}
		]
	}`)
	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		if req.Args.URL != "ytsearch3:golang tutorial" {
			t.Errorf("search URL = %q", req.Args.URL)
		}
		return searchJSON, nil
	}}
	fake.install(t)

	results, err := Search(context.Background(), "golang tutorial", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// The untitled entry is skipped.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Channel != "Fireship" || results[0].ViewCount != 2000000 {
		t.Errorf("result 0 = %+v", results[0])
	}
	if results[1].URL != "https://www.youtube.com/watch?v=ccccccccccc" {
		t.Errorf("result 1 URL = %q, want default watch URL", results[1].URL)
	}
}

func TestSearchValidation(t *testing.T) {
	setupEngine(t)

	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		return []byte(`{"entries":[]}`), nil
	}}
	fake.install(t)

	tests := []struct {
		query string
		max   int
	}{
		{"", 5},
		{"   ", 5},
		{"go", -1},
		{"go", maxSearchResults + 1},
	}
	for _, tt := range tests {
		_, err := Search(context.Background(), tt.query, tt.max)
		if !engine.IsKind(err, engine.KindSearch) {
			t.Errorf("Search(%q, %d) err = %v, want SearchError", tt.query, tt.max, err)
		}
	}
	if fake.total() != 0 {
		t.Errorf("extractor ran %d times, want 0", fake.total())
	}
}

func TestSearchRekindsExtractionFailure(t *testing.T) {
	setupEngine(t)

	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		return nil, engine.Errorf(engine.KindExtraction, "network is unreachable")
	}}
	fake.install(t)

	_, err := Search(context.Background(), "golang", 0)
	if !engine.IsKind(err, engine.KindSearch) {
		t.Errorf("err = %v, want SearchError", err)
	}
}

func TestSearchDefaultCount(t *testing.T) {
	setupEngine(t)

	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		if req.Args.URL != fmt.Sprintf("ytsearch%d:golang", defaultSearchResults) {
			t.Errorf("search URL = %q", req.Args.URL)
		}
		return []byte(`{"entries":[]}`), nil
	}}
	fake.install(t)

	results, err := Search(context.Background(), "golang", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestAudioURL(t *testing.T) {
	setupEngine(t)

	info := infoDict{ID: "dQw4w9WgXcQ", Title: "Test", Formats: sampleFormats}
	data, _ := json.Marshal(info)
	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		return data, nil
	}}
	fake.install(t)

	ctx := context.Background()

	t.Run("best", func(t *testing.T) {
		got, err := AudioURL(ctx, "https://youtu.be/dQw4w9WgXcQ", "best")
		if err != nil {
			t.Fatalf("AudioURL: %v", err)
		}
		if got.FormatID != "251" || got.ABR != 160 {
			t.Errorf("got %+v, want format 251 at 160kbps", got)
		}
	})

	t.Run("smallest", func(t *testing.T) {
		got, err := AudioURL(ctx, "https://youtu.be/dQw4w9WgXcQ", "smallest")
		if err != nil {
			t.Fatalf("AudioURL: %v", err)
		}
		if got.FormatID != "250" {
			t.Errorf("got %+v, want format 250", got)
		}
	})

	t.Run("invalid quality", func(t *testing.T) {
		_, err := AudioURL(ctx, "https://youtu.be/dQw4w9WgXcQ", "lossless")
		if !engine.IsKind(err, engine.KindExtraction) {
			t.Errorf("err = %v, want ExtractionError", err)
		}
	})

	t.Run("quality variants cached separately", func(t *testing.T) {
		calls := fake.total()
		if _, err := AudioURL(ctx, "https://youtu.be/dQw4w9WgXcQ", "best"); err != nil {
			t.Fatalf("AudioURL: %v", err)
		}
		if fake.total() != calls {
			t.Error("repeat call with the same quality should hit the cache")
		}
	})
}

func TestAudioURLNoAudioFormats(t *testing.T) {
	setupEngine(t)

	fake := &fakeRunner{handler: func(req Request) ([]byte, error) {
		return []byte(`{"id":"x","title":"t","formats":[{"format_id":"137","ext":"mp4","vcodec":"avc1","acodec":"none"}]}`), nil
	}}
	fake.install(t)

	_, err := AudioURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "best")
	if !engine.IsKind(err, engine.KindExtraction) {
		t.Errorf("err = %v, want ExtractionError", err)
	}
}
