// Package player drives video playback with per-channel color adjustment.
//
// A [Player] owns at most one open [video.Source], a [Surface] it renders to,
// the playback flags, a position slider, and three [dial.Dial] controls that
// set the red, green, and blue multipliers.
//
// All state changes go through [Player.Handle], which takes one [Event] and
// returns a [Result] describing what the caller must do next: schedule a
// [Tick] after a delay, show a file prompt, or show an informational dialog.
// Handle never blocks on timers and never spawns goroutines, so a caller that
// delivers events one at a time (for example a Bubble Tea update loop) needs
// no locking, and tests can step playback synchronously:
//
//	res := p.Handle(ctx, player.Load{Path: "clip.mp4"})
//	for res.Next != nil {
//	    res = p.Handle(ctx, player.Tick{Gen: res.Next.Gen})
//	}
//
// Frames are read only while the player is running, not paused, and not
// seeking. Reading past the last frame stops playback and releases the
// source.
package player
