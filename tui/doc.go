// Package tui renders a [player.Player] in the terminal with Bubble Tea.
//
// Video frames are drawn with half-block characters, two pixels per cell.
// Below the video sit the play/pause, load, and help buttons, the seek
// slider, and one dial per color channel. All controls respond to the mouse;
// the main actions also have keys.
package tui
