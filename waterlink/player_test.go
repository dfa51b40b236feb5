package waterlink

import (
	"testing"
	"time"
)

func TestSetVolumeClamp(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	cases := []struct {
		requested int
		want      int
	}{
		{500, 150},
		{-10, 0},
		{75, 75},
	}
	for _, tc := range cases {
		if err := p.SetVolume(tc.requested); err != nil {
			t.Fatalf("SetVolume(%d): %v", tc.requested, err)
		}
		if got := p.Volume(); got != tc.want {
			t.Errorf("stored volume = %d, want %d", got, tc.want)
		}
		frame := ns.next(time.Second)
		if frame["op"] != "volume" {
			t.Fatalf("op = %v", frame["op"])
		}
		if got := int(frame["volume"].(float64)); got != tc.want {
			t.Errorf("sent volume = %d, want %d", got, tc.want)
		}
	}
}

func TestSetPauseIdempotent(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.SetPause(true); err != nil {
		t.Fatalf("SetPause: %v", err)
	}
	if err := p.SetPause(true); err != nil {
		t.Fatalf("SetPause: %v", err)
	}

	frame := ns.next(time.Second)
	if frame["op"] != "pause" || frame["pause"] != true {
		t.Fatalf("unexpected frame: %v", frame)
	}
	ns.expectNone(100 * time.Millisecond)

	if !p.Paused() {
		t.Error("player not paused")
	}
	if err := p.SetPause(false); err != nil {
		t.Fatalf("SetPause: %v", err)
	}
	frame = ns.next(time.Second)
	if frame["pause"] != false {
		t.Fatalf("unexpected frame: %v", frame)
	}
}

func TestPlayCommand(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	track := Track{ID: "token123", Info: TrackInfo{Title: "song", Length: 240000}}
	if err := p.Play(track); err != nil {
		t.Fatalf("Play: %v", err)
	}

	frame := ns.next(time.Second)
	if frame["op"] != "play" || frame["track"] != "token123" || frame["guildId"] != "1" {
		t.Fatalf("unexpected frame: %v", frame)
	}
	if _, present := frame["endTime"]; present {
		t.Error("endTime sent for an unbounded play")
	}
	if frame["startTime"].(float64) != 0 {
		t.Errorf("startTime = %v", frame["startTime"])
	}

	if !p.Playing() {
		t.Error("player not playing after Play")
	}
	if got := p.Track(); got == nil || got.ID != "token123" {
		t.Errorf("stored track = %v", got)
	}
}

func TestPlayFromBounds(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.PlayFrom(Track{ID: "tok"}, 1.5, 30); err != nil {
		t.Fatalf("PlayFrom: %v", err)
	}
	frame := ns.next(time.Second)
	if frame["startTime"].(float64) != 1500 {
		t.Errorf("startTime = %v, want 1500", frame["startTime"])
	}
	if frame["endTime"].(float64) != 30000 {
		t.Errorf("endTime = %v, want 30000", frame["endTime"])
	}
}

func TestStopKeepsTrack(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.Play(Track{ID: "tok"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ns.next(time.Second)

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	frame := ns.next(time.Second)
	if frame["op"] != "stop" {
		t.Fatalf("unexpected frame: %v", frame)
	}

	if p.Playing() {
		t.Error("still playing after Stop")
	}
	if p.Track() == nil {
		t.Error("Stop cleared the track; that is the track-end event's job")
	}
}

func TestSeekSendsMilliseconds(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.Seek(42.5); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	frame := ns.next(time.Second)
	if frame["op"] != "seek" || frame["position"].(float64) != 42500 {
		t.Fatalf("unexpected frame: %v", frame)
	}
	if _, ok := p.Position(); ok {
		t.Error("Seek updated the local position estimate")
	}
}

func TestEqualizerBatch(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	err := p.SetGains(
		BandGain{Band: -1, Gain: 0.5},
		BandGain{Band: 5, Gain: 2.0},
		BandGain{Band: 20, Gain: 0.1},
	)
	if err != nil {
		t.Fatalf("SetGains: %v", err)
	}

	gains := p.Gains()
	if gains[5] != 1.0 {
		t.Errorf("band 5 gain = %v, want clamped 1.0", gains[5])
	}

	frame := ns.next(time.Second)
	if frame["op"] != "equalizer" {
		t.Fatalf("op = %v", frame["op"])
	}
	bands := frame["bands"].([]any)
	if len(bands) != 1 {
		t.Fatalf("sent %d bands, want 1: %v", len(bands), bands)
	}
	entry := bands[0].(map[string]any)
	if entry["band"].(float64) != 5 || entry["gain"].(float64) != 1.0 {
		t.Errorf("unexpected band entry: %v", entry)
	}
	ns.expectNone(100 * time.Millisecond)
}

func TestGainClampLow(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.SetGain(3, -5); err != nil {
		t.Fatalf("SetGain: %v", err)
	}
	if got := p.Gains()[3]; got != MinGain {
		t.Errorf("band 3 gain = %v, want %v", got, MinGain)
	}
	ns.next(time.Second)
}

func TestResetEqualizer(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if err := p.SetGain(2, 0.7); err != nil {
		t.Fatalf("SetGain: %v", err)
	}
	ns.next(time.Second)

	if err := p.ResetEqualizer(); err != nil {
		t.Fatalf("ResetEqualizer: %v", err)
	}
	frame := ns.next(time.Second)
	bands := frame["bands"].([]any)
	if len(bands) != NumBands {
		t.Fatalf("reset sent %d bands, want %d", len(bands), NumBands)
	}
	for _, g := range p.Gains() {
		if g != 0 {
			t.Errorf("gain %v after reset, want 0", g)
		}
	}
}

func TestTrackEndEventWithoutHandler(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(9)

	if err := p.Play(Track{ID: "tok"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ns.next(time.Second)

	ns.push(map[string]any{
		"op": "playerUpdate", "guildId": "9",
		"state": map[string]any{"time": float64(time.Now().UnixMilli()), "position": 1000.0},
	})
	ns.push(map[string]any{
		"op": "event", "type": "TrackEndEvent", "guildId": "9", "reason": "FINISHED",
	})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !p.Playing() && p.Track() == nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if p.Playing() {
		t.Error("still playing after track end")
	}
	if p.Track() != nil {
		t.Error("track not cleared on track end")
	}
	if _, ok := p.Position(); ok {
		t.Error("position not cleared on track end")
	}
}

func TestTrackEndEventInvokesHandler(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(9)

	type ended struct {
		player *Player
		reason string
	}
	got := make(chan ended, 1)
	p.OnTrackEnd(func(p *Player, reason string) {
		got <- ended{player: p, reason: reason}
	})

	if err := p.Play(Track{ID: "tok"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ns.next(time.Second)

	ns.push(map[string]any{
		"op": "event", "type": "TrackEndEvent", "guildId": "9", "reason": "FINISHED",
	})

	select {
	case e := <-got:
		if e.player != p {
			t.Error("handler received a different player")
		}
		if e.reason != "FINISHED" {
			t.Errorf("reason = %q", e.reason)
		}
		if e.player.Track() != nil {
			t.Error("state not reset before the handler ran")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("track-end handler never fired")
	}
}

func TestOtherEventsIgnored(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(9)

	if err := p.Play(Track{ID: "tok"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ns.next(time.Second)

	ns.push(map[string]any{
		"op": "event", "type": "TrackStuckEvent", "guildId": "9",
	})
	time.Sleep(50 * time.Millisecond)

	if !p.Playing() || p.Track() == nil {
		t.Error("a non-TrackEndEvent mutated player state")
	}
}

func TestConnectDisconnectState(t *testing.T) {
	gw := newFakeGateway()
	c, _ := newTestConnection(t, gw)
	p := c.PlayerByID(5)

	if p.Connected() {
		t.Fatal("connected before Connect")
	}
	if err := p.Connect(777); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if p.ChannelID() != 777 {
		t.Errorf("channel = %d", p.ChannelID())
	}

	calls := gw.voiceCalls()
	if len(calls) != 1 || calls[0].guildID != "5" || calls[0].channelID != "777" {
		t.Fatalf("unexpected voice calls: %v", calls)
	}

	if err := p.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if p.Connected() {
		t.Error("still connected after Disconnect")
	}
	calls = gw.voiceCalls()
	if len(calls) != 2 || calls[1].channelID != "" {
		t.Fatalf("disconnect did not clear voice state: %v", calls)
	}
}

func TestStateObservables(t *testing.T) {
	c, ns := newTestConnection(t, newFakeGateway())
	p := c.PlayerByID(1)

	if !p.Stopped() {
		t.Error("fresh player not stopped")
	}

	if err := p.Play(Track{ID: "tok"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ns.next(time.Second)
	if !p.Playing() || p.Stopped() {
		t.Error("playing state wrong after Play")
	}

	if err := p.SetPause(true); err != nil {
		t.Fatalf("SetPause: %v", err)
	}
	ns.next(time.Second)
	if p.Playing() {
		t.Error("paused player observable as playing")
	}
	if p.Stopped() {
		t.Error("paused player reported stopped")
	}
}
