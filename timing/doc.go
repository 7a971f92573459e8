// Package timing measures how far note-ons land from the quarter-note grid
// of the host transport and publishes the result for other goroutines.
//
// Engine.Process runs on the audio thread once per block. It never
// allocates, locks, blocks or logs. Its output lives in a State: two
// independently atomic float64 slots that any number of readers may poll
// at their own pace. A reader can observe the two slots from different
// blocks; within a slot a value is never torn.
package timing
