package waterlink

import "testing"

func TestThumbnail(t *testing.T) {
	yt := Track{Info: TrackInfo{
		Identifier: "dQw4w9WgXcQ",
		URI:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}}
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/default.jpg"
	if got := yt.Thumbnail(); got != want {
		t.Errorf("Thumbnail() = %q, want %q", got, want)
	}

	sc := Track{Info: TrackInfo{
		Identifier: "12345",
		URI:        "https://soundcloud.com/artist/song",
	}}
	if got := sc.Thumbnail(); got != "" {
		t.Errorf("non-YouTube thumbnail = %q, want empty", got)
	}
}

func TestBassboostPresets(t *testing.T) {
	for _, level := range []BassboostLevel{
		BassboostOff, BassboostLow, BassboostMedium,
		BassboostHigh, BassboostInsane, BassboostUltra,
	} {
		gains := Bassboost(level)
		if len(gains) != 2 {
			t.Errorf("Bassboost(%s) has %d entries, want 2", level, len(gains))
		}
		for _, g := range gains {
			if g.Band != 0 && g.Band != 1 {
				t.Errorf("Bassboost(%s) touches band %d", level, g.Band)
			}
		}
	}
	if Bassboost("nope") != nil {
		t.Error("unknown level returned a preset")
	}
}
