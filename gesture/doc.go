// Package gesture turns raw touch streams into playback intents.
//
// Two independent recognizers run on the same surface. Classifier follows a pan
// from Began to its terminal phase and reports horizontal drags as seeks and
// vertical drags as adjustments of the half the pan started on. TapRecognizer
// sees only completed short taps and separates single taps from double taps.
// Both consult a RegionPolicy so that presses on UI chrome are ignored.
package gesture
